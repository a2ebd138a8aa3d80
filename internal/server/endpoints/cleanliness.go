package endpoints

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/analysis"
	"github.com/lectern-ai/lectern/internal/api"
	"github.com/lectern-ai/lectern/internal/svcctx"
)

// CleanlinessRequest is the request body for cleanliness evaluation.
type CleanlinessRequest struct {
	Text    string `json:"text"`
	Model   string `json:"model,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// CleanlinessEndpoint handles POST /evaluate_article_cleanliness.
type CleanlinessEndpoint struct{}

func (e *CleanlinessEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/evaluate_article_cleanliness", e.handler
}

func (e *CleanlinessEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Evaluate article cleanliness
//	@Description	Judges whether a text is clean or needs cleanup before use
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CleanlinessRequest	true	"Evaluation request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/evaluate_article_cleanliness [post]
func (e *CleanlinessEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CleanlinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	svc := svcctx.AnalysisFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis service not initialized")
		return
	}

	result := svc.EvaluateCleanliness(r.Context(), analysis.CleanlinessRequest{
		Text: req.Text,
		Overrides: analysis.Overrides{
			Model:   req.Model,
			APIKey:  req.APIKey,
			BaseURL: req.BaseURL,
		},
	})
	writeJSON(w, http.StatusOK, result)
}

func (e *CleanlinessEndpoint) Command(getServerURL func() string) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "cleanliness <file>",
		Short: "Judge whether a document needs cleaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var result map[string]any
			if err := client.Post(cmd.Context(), "/evaluate_article_cleanliness",
				CleanlinessRequest{Text: string(data), Model: model}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Override the default model")
	return cmd
}
