package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/lectern-ai/lectern/internal/providers"
)

// oneShotAttempts bounds retries for the single-turn analyzers. The agentic
// loop never retries; these endpoints are synchronous and cheap to repeat.
const oneShotAttempts = 3

// CleanlinessRequest asks whether a text needs cleaning before use.
type CleanlinessRequest struct {
	Text      string
	Overrides Overrides
}

// PolishRequest asks for a cleaned single-pass rewrite of the text.
type PolishRequest struct {
	Text      string
	Overrides Overrides
}

// FinalizeRequest asks for metadata extraction and classification.
type FinalizeRequest struct {
	Text       string
	Categories []Category
	Overrides  Overrides
}

// GlossaryLookupRequest asks which glossary terms appear in the text.
type GlossaryLookupRequest struct {
	Text      string
	Glossary  []GlossaryEntry
	Overrides Overrides
}

// oneShot chunks the text, sends system prompt + chunk messages + a closing
// instruction in a single non-streamed call, and extracts the JSON object
// from the reply. A parse failure degrades to a fallback payload carrying
// the raw text. Transport failures after retries come back as an error
// payload, not a Go error; err is returned alongside for logging.
func (s *Service) oneShot(
	ctx context.Context,
	client providers.ChatStreamer,
	model string,
	systemPrompt string,
	chunks []string,
	closing string,
) (map[string]any, error) {
	messages := []providers.Message{{Role: "system", Content: systemPrompt}}
	for _, formatted := range FormatChunks(chunks) {
		messages = append(messages, providers.Message{Role: "user", Content: formatted})
	}
	messages = append(messages, providers.Message{Role: "user", Content: closing})

	var res *providers.ChatResult
	err := retry.Do(
		func() error {
			var callErr error
			res, callErr = client.Chat(ctx, &providers.ChatRequest{
				Messages: messages,
				Model:    model,
			})
			return callErr
		},
		retry.Attempts(oneShotAttempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return map[string]any{"error": err.Error()}, err
	}

	content := res.Content
	if content == "" {
		content = "{}"
	}

	obj, ok := ExtractJSON(content)
	if !ok {
		return map[string]any{
			"error":        "Failed to parse LLM response as JSON",
			"raw_response": truncate(content, 500),
		}, nil
	}
	return obj, nil
}

// EvaluateCleanliness judges whether the text is clean or messy. The result
// always carries a boolean is_messy, even when the model reply was unusable.
func (s *Service) EvaluateCleanliness(ctx context.Context, req CleanlinessRequest) map[string]any {
	eff, client := s.resolve(req.Overrides)

	chunks := ChunkByWords(req.Text, DefaultChunkWords)
	totalWords := CountWords(req.Text)

	prompt := BuildCleanlinessEvaluationPrompt(len(chunks), totalWords)
	result, err := s.oneShot(ctx, client, eff.Model, prompt, chunks,
		"Please evaluate this article's cleanliness and respond with ONLY the JSON object, no other text.")
	if err != nil {
		s.logger.Error("cleanliness evaluation failed", "error", err)
	}
	if _, parseFailed := result["raw_response"]; parseFailed {
		result["reasoning"] = "Failed to parse LLM response as JSON"
		delete(result, "error")
	}

	// Coerce is_messy to a boolean whatever the model returned.
	if v, ok := result["is_messy"]; ok {
		result["is_messy"] = truthy(v)
	} else {
		result["is_messy"] = false
	}

	result["model"] = eff.Model
	result["total_chunks"] = len(chunks)
	result["total_words"] = totalWords
	return result
}

// PolishContent cleans up the text in a single pass.
func (s *Service) PolishContent(ctx context.Context, req PolishRequest) map[string]any {
	eff, client := s.resolve(req.Overrides)

	chunks := ChunkByWords(req.Text, DefaultChunkWords)
	totalWords := CountWords(req.Text)

	prompt := BuildPolishContentPrompt(len(chunks), totalWords)
	result, err := s.oneShot(ctx, client, eff.Model, prompt, chunks,
		"Please polish this content and respond with ONLY the JSON object, no other text.")
	if err != nil {
		s.logger.Error("content polishing failed", "error", err)
	}

	result["model"] = eff.Model
	result["total_chunks"] = len(chunks)
	result["total_words"] = totalWords
	return result
}

// FinalizeContent extracts metadata and classifies the text.
func (s *Service) FinalizeContent(ctx context.Context, req FinalizeRequest) map[string]any {
	eff, client := s.resolve(req.Overrides)

	chunks := ChunkByWords(req.Text, DefaultChunkWords)
	totalWords := CountWords(req.Text)

	prompt := BuildFinalizeContentPrompt(len(chunks), totalWords, req.Categories, eff.MaxKeywords)
	result, err := s.oneShot(ctx, client, eff.Model, prompt, chunks,
		"Please analyze this content and respond with ONLY the JSON object, no other text.")
	if err != nil {
		s.logger.Error("content finalization failed", "error", err)
	}

	result["model"] = eff.Model
	result["total_chunks"] = len(chunks)
	result["total_words"] = totalWords
	return result
}

// GlossaryLookup asks the model which glossary terms appear in the text and
// enriches each reported match with its original definition.
func (s *Service) GlossaryLookup(ctx context.Context, req GlossaryLookupRequest) map[string]any {
	eff, client := s.resolve(req.Overrides)

	chunks := ChunkByWords(req.Text, DefaultChunkWords)
	totalWords := CountWords(req.Text)

	terms := make([]string, len(req.Glossary))
	byTerm := make(map[string]GlossaryEntry, len(req.Glossary))
	for i, entry := range req.Glossary {
		terms[i] = entry.Term
		byTerm[strings.ToLower(entry.Term)] = entry
	}

	prompt := BuildGlossaryLookupPrompt(len(chunks), totalWords, terms)
	result, err := s.oneShot(ctx, client, eff.Model, prompt, chunks,
		"Please search for glossary terms and respond with ONLY the JSON object, no other text.")
	if err != nil {
		s.logger.Error("glossary lookup failed", "error", err)
	}

	if matches, ok := result["matches"].([]any); ok {
		for _, raw := range matches {
			match, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			term, _ := match["term"].(string)
			if entry, found := byTerm[strings.ToLower(term)]; found {
				match["definition"] = entry.Definition
			}
		}
	}

	result["model"] = eff.Model
	result["total_chunks"] = len(chunks)
	result["total_words"] = totalWords
	result["glossary_terms_searched"] = len(terms)
	return result
}

// truthy coerces a decoded JSON value to a boolean the way a dynamic
// language would.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case float64:
		return t != 0
	case nil:
		return false
	default:
		return true
	}
}
