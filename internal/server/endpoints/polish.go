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

// PolishRequest is the request body for content polishing.
type PolishRequest struct {
	Text    string `json:"text"`
	Model   string `json:"model,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// PolishEndpoint handles POST /polish_content.
type PolishEndpoint struct{}

func (e *PolishEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/polish_content", e.handler
}

func (e *PolishEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Polish article content
//	@Description	Removes web artifacts and fixes formatting while preserving meaning
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PolishRequest	true	"Polish request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/polish_content [post]
func (e *PolishEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req PolishRequest
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

	result := svc.PolishContent(r.Context(), analysis.PolishRequest{
		Text: req.Text,
		Overrides: analysis.Overrides{
			Model:   req.Model,
			APIKey:  req.APIKey,
			BaseURL: req.BaseURL,
		},
	})
	writeJSON(w, http.StatusOK, result)
}

func (e *PolishEndpoint) Command(getServerURL func() string) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "polish <file>",
		Short: "Clean and polish a document in one pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var result map[string]any
			if err := client.Post(cmd.Context(), "/polish_content",
				PolishRequest{Text: string(data), Model: model}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Override the default model")
	return cmd
}
