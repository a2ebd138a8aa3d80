package analysis

import (
	"context"
	"log/slog"

	"github.com/lectern-ai/lectern/internal/providers"
)

// Settings is the immutable snapshot of service-wide defaults for one run.
// Per-request overrides are merged on top at call time.
type Settings struct {
	Model         string
	APIKey        string
	BaseURL       string
	MaxIterations int
	MaxKeywords   int
}

// Overrides are per-request knobs that win over service defaults when set.
type Overrides struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxKeywords int
}

// ClientFactory builds a chat client for resolved connection settings.
type ClientFactory func(providers.ClientConfig) providers.ChatStreamer

// Service runs document analyses against a chat model. It resolves request
// overrides against the current settings snapshot and owns client creation,
// so hosting code only deals in requests and events.
type Service struct {
	settings  func() Settings
	newClient ClientFactory
	logger    *slog.Logger
}

// NewService creates an analysis service. The settings function is called
// once per request so configuration reloads take effect without restarts.
func NewService(settings func() Settings, factory ClientFactory, logger *slog.Logger) *Service {
	if factory == nil {
		factory = func(cfg providers.ClientConfig) providers.ChatStreamer {
			return providers.NewOpenAIClient(cfg)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{settings: settings, newClient: factory, logger: logger}
}

// resolve merges request overrides onto the current defaults and builds a
// client for the effective endpoint.
func (s *Service) resolve(o Overrides) (Settings, providers.ChatStreamer) {
	eff := s.settings()
	if o.Model != "" {
		eff.Model = o.Model
	}
	if o.APIKey != "" {
		eff.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		eff.BaseURL = o.BaseURL
	}
	if o.MaxKeywords > 0 {
		eff.MaxKeywords = o.MaxKeywords
	}
	client := s.newClient(providers.ClientConfig{APIKey: eff.APIKey, BaseURL: eff.BaseURL})
	return eff, client
}

// StudyTextRequest is the full input for one streamed analysis run.
type StudyTextRequest struct {
	Text                 string
	Glossary             []GlossaryEntry
	Categories           []Category
	IsStandalone         bool
	EnablePolishContent  bool
	EnableGlossaryLookup bool
	Overrides            Overrides
}

// StudyText runs a document analysis, emitting progress events to the sink.
// All failure is reported through the event stream; the returned result is
// the same snapshot carried by the final complete event.
func (s *Service) StudyText(ctx context.Context, req StudyTextRequest, emit EventSink) *Result {
	eff, client := s.resolve(req.Overrides)

	engine := NewEngine(client, eff.Model, eff.MaxIterations, s.logger)
	return engine.Run(ctx, RunOptions{
		Text:                 req.Text,
		Glossary:             req.Glossary,
		Categories:           req.Categories,
		MaxKeywords:          eff.MaxKeywords,
		Standalone:           req.IsStandalone,
		EnablePolishContent:  req.EnablePolishContent,
		EnableGlossaryLookup: req.EnableGlossaryLookup,
	}, emit)
}
