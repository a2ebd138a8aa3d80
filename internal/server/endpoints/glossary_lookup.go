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

// GlossaryLookupRequest is the request body for glossary term search.
type GlossaryLookupRequest struct {
	Text     string                   `json:"text"`
	Glossary []analysis.GlossaryEntry `json:"glossary"`
	Model    string                   `json:"model,omitempty"`
	APIKey   string                   `json:"api_key,omitempty"`
	BaseURL  string                   `json:"base_url,omitempty"`
}

// GlossaryLookupEndpoint handles POST /glossary_lookup.
type GlossaryLookupEndpoint struct{}

func (e *GlossaryLookupEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/glossary_lookup", e.handler
}

func (e *GlossaryLookupEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Find glossary terms in text
//	@Description	Searches the text for glossary term occurrences and attaches definitions to matches
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GlossaryLookupRequest	true	"Lookup request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/glossary_lookup [post]
func (e *GlossaryLookupEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req GlossaryLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(req.Glossary) == 0 {
		writeError(w, http.StatusBadRequest, "glossary is required")
		return
	}

	svc := svcctx.AnalysisFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis service not initialized")
		return
	}

	result := svc.GlossaryLookup(r.Context(), analysis.GlossaryLookupRequest{
		Text:     req.Text,
		Glossary: req.Glossary,
		Overrides: analysis.Overrides{
			Model:   req.Model,
			APIKey:  req.APIKey,
			BaseURL: req.BaseURL,
		},
	})
	writeJSON(w, http.StatusOK, result)
}

func (e *GlossaryLookupEndpoint) Command(getServerURL func() string) *cobra.Command {
	var model, glossaryFile string
	cmd := &cobra.Command{
		Use:   "glossary <file>",
		Short: "Find glossary terms in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var glossary []analysis.GlossaryEntry
			if glossaryFile != "" {
				raw, err := os.ReadFile(glossaryFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &glossary); err != nil {
					return err
				}
			}

			client := api.NewClient(getServerURL())
			var result map[string]any
			if err := client.Post(cmd.Context(), "/glossary_lookup",
				GlossaryLookupRequest{Text: string(data), Glossary: glossary, Model: model}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Override the default model")
	cmd.Flags().StringVar(&glossaryFile, "glossary", "", "Path to a JSON file of glossary entries")
	_ = cmd.MarkFlagRequired("glossary")
	return cmd
}
