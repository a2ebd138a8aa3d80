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

// FinalizeRequest is the request body for metadata finalization.
type FinalizeRequest struct {
	Text        string              `json:"text"`
	Categories  []analysis.Category `json:"categories,omitempty"`
	MaxKeywords int                 `json:"max_keywords,omitempty"`
	Model       string              `json:"model,omitempty"`
	APIKey      string              `json:"api_key,omitempty"`
	BaseURL     string              `json:"base_url,omitempty"`
}

// FinalizeEndpoint handles POST /finalize_content.
type FinalizeEndpoint struct{}

func (e *FinalizeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/finalize_content", e.handler
}

func (e *FinalizeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Finalize article content
//	@Description	Extracts language, title, summary, keywords, category and related metadata
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		FinalizeRequest	true	"Finalize request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/finalize_content [post]
func (e *FinalizeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req FinalizeRequest
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

	result := svc.FinalizeContent(r.Context(), analysis.FinalizeRequest{
		Text:       req.Text,
		Categories: req.Categories,
		Overrides: analysis.Overrides{
			Model:       req.Model,
			APIKey:      req.APIKey,
			BaseURL:     req.BaseURL,
			MaxKeywords: req.MaxKeywords,
		},
	})
	writeJSON(w, http.StatusOK, result)
}

func (e *FinalizeEndpoint) Command(getServerURL func() string) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "finalize <file>",
		Short: "Extract metadata and classify a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var result map[string]any
			if err := client.Post(cmd.Context(), "/finalize_content",
				FinalizeRequest{Text: string(data), Model: model}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Override the default model")
	return cmd
}
