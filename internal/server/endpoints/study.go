package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/analysis"
	"github.com/lectern-ai/lectern/internal/api"
	"github.com/lectern-ai/lectern/internal/svcctx"
)

// StudyTextRequest is the request body for document analysis.
type StudyTextRequest struct {
	Text                 string                   `json:"text"`
	Glossary             []analysis.GlossaryEntry `json:"glossary,omitempty"`
	Categories           []analysis.Category      `json:"categories,omitempty"`
	MaxKeywords          int                      `json:"max_keywords,omitempty"`
	IsStandalone         bool                     `json:"is_standalone,omitempty"`
	EnablePolishContent  *bool                    `json:"enable_polish_content,omitempty"`
	EnableGlossaryLookup *bool                    `json:"enable_glossary_lookup,omitempty"`
	Model                string                   `json:"model,omitempty"`
	APIKey               string                   `json:"api_key,omitempty"`
	BaseURL              string                   `json:"base_url,omitempty"`
}

// StudyTextEndpoint handles POST /study_text.
type StudyTextEndpoint struct{}

func (e *StudyTextEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/study_text", e.handler
}

func (e *StudyTextEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Analyze a document
//	@Description	Runs iterative LLM analysis with tool calling and streams progress as Server-Sent Events
//	@Tags			analysis
//	@Accept			json
//	@Produce		text/event-stream
//	@Param			request	body	StudyTextRequest	true	"Analysis request"
//	@Success		200		{string}	string	"SSE stream of start/iteration/chunk/tool_call/tool_result/error/complete events"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/study_text [post]
func (e *StudyTextEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req StudyTextRequest
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

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	svc.StudyText(r.Context(), analysis.StudyTextRequest{
		Text:                 req.Text,
		Glossary:             req.Glossary,
		Categories:           req.Categories,
		IsStandalone:         req.IsStandalone,
		EnablePolishContent:  boolOrDefault(req.EnablePolishContent, true),
		EnableGlossaryLookup: boolOrDefault(req.EnableGlossaryLookup, true),
		Overrides: analysis.Overrides{
			Model:       req.Model,
			APIKey:      req.APIKey,
			BaseURL:     req.BaseURL,
			MaxKeywords: req.MaxKeywords,
		},
	}, func(ev analysis.Event) {
		fmt.Fprint(w, analysis.FormatSSE(ev))
		flusher.Flush()
	})
}

func (e *StudyTextEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		standalone  bool
		model       string
		maxKeywords int
	)
	cmd := &cobra.Command{
		Use:   "study <file>",
		Short: "Analyze a document, streaming progress",
		Long: `Analyze a markdown or text file with the agentic analysis loop.

Model output streams to stderr as it arrives; the final result prints to
stdout when the run completes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			req := StudyTextRequest{
				Text:         string(data),
				IsStandalone: standalone,
				Model:        model,
				MaxKeywords:  maxKeywords,
			}

			return client.PostStream(cmd.Context(), "/study_text", req, func(ev api.StreamEvent) error {
				switch ev.Event {
				case "chunk":
					var payload struct {
						Content string `json:"content"`
					}
					if json.Unmarshal([]byte(ev.Data), &payload) == nil {
						fmt.Fprint(os.Stderr, payload.Content)
					}
				case "tool_call":
					var payload struct {
						Name string `json:"name"`
					}
					if json.Unmarshal([]byte(ev.Data), &payload) == nil {
						fmt.Fprintf(os.Stderr, "\n[tool: %s]\n", payload.Name)
					}
				case "error":
					fmt.Fprintf(os.Stderr, "\nerror: %s\n", ev.Data)
				case "complete":
					var result map[string]any
					if err := json.Unmarshal([]byte(ev.Data), &result); err != nil {
						return err
					}
					fmt.Fprintln(os.Stderr)
					return api.Output(result)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&standalone, "standalone", false, "Deliver the whole document up front instead of iterative reads")
	cmd.Flags().StringVar(&model, "model", "", "Override the default model")
	cmd.Flags().IntVar(&maxKeywords, "max-keywords", 0, "Maximum keywords to generate")
	return cmd
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
