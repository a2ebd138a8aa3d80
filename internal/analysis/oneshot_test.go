package analysis

import (
	"context"
	"testing"

	"github.com/lectern-ai/lectern/internal/providers"
)

func newTestService(client *providers.MockClient) *Service {
	settings := func() Settings {
		return Settings{Model: "test-model", MaxIterations: 20, MaxKeywords: 10}
	}
	factory := func(providers.ClientConfig) providers.ChatStreamer { return client }
	return NewService(settings, factory, nil)
}

func TestEvaluateCleanliness(t *testing.T) {
	t.Run("clean article", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: `{"is_messy": false, "cleanliness_score": 92, "reasoning": "Well formatted.", "issues_found": []}`},
		}}
		svc := newTestService(client)

		result := svc.EvaluateCleanliness(context.Background(), CleanlinessRequest{Text: "A tidy article."})
		if result["is_messy"] != false {
			t.Errorf("expected is_messy false, got %v", result["is_messy"])
		}
		if result["model"] != "test-model" {
			t.Errorf("expected model metadata, got %v", result["model"])
		}
		if result["total_chunks"] != 1 {
			t.Errorf("expected 1 chunk, got %v", result["total_chunks"])
		}
		if result["total_words"] != 3 {
			t.Errorf("expected 3 words, got %v", result["total_words"])
		}
	})

	t.Run("is_messy coerced from non-boolean", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: `{"is_messy": "true"}`},
		}}
		svc := newTestService(client)

		result := svc.EvaluateCleanliness(context.Background(), CleanlinessRequest{Text: "text"})
		if result["is_messy"] != true {
			t.Errorf("expected string true to coerce, got %v", result["is_messy"])
		}
	})

	t.Run("unparseable reply degrades gracefully", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: "I cannot answer in JSON, sorry."},
		}}
		svc := newTestService(client)

		result := svc.EvaluateCleanliness(context.Background(), CleanlinessRequest{Text: "text"})
		if result["is_messy"] != false {
			t.Errorf("expected is_messy to default false, got %v", result["is_messy"])
		}
		if result["reasoning"] != "Failed to parse LLM response as JSON" {
			t.Errorf("unexpected reasoning: %v", result["reasoning"])
		}
		if result["raw_response"] != "I cannot answer in JSON, sorry." {
			t.Errorf("expected raw response preserved, got %v", result["raw_response"])
		}
		if _, ok := result["error"]; ok {
			t.Error("parse failure should not surface as an error key")
		}
	})
}

func TestPolishContent(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: "```json\n{\"polished_content\": \"Clean text.\", \"changes_made\": [\"removed ads\"]}\n```"},
	}}
	svc := newTestService(client)

	result := svc.PolishContent(context.Background(), PolishRequest{Text: "Messy <b>text</b>."})
	if result["polished_content"] != "Clean text." {
		t.Errorf("unexpected polished content: %v", result["polished_content"])
	}
	if result["model"] != "test-model" {
		t.Errorf("missing model metadata: %v", result["model"])
	}
}

func TestFinalizeContent(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: `{"language": "en-US", "title": "Doc", "keywords": ["a"], "category": ["Tech"]}`},
	}}
	svc := newTestService(client)

	result := svc.FinalizeContent(context.Background(), FinalizeRequest{
		Text:       "Some content.",
		Categories: []Category{{Name: "Tech"}},
	})
	if result["title"] != "Doc" {
		t.Errorf("unexpected title: %v", result["title"])
	}
	if result["total_words"] != 2 {
		t.Errorf("expected 2 words, got %v", result["total_words"])
	}
}

func TestServiceGlossaryLookup(t *testing.T) {
	t.Run("matches enriched with definitions", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: `{"matches": [{"term": "rag", "occurrences": 2}], "total_matches": 2}`},
		}}
		svc := newTestService(client)

		result := svc.GlossaryLookup(context.Background(), GlossaryLookupRequest{
			Text: "RAG appears twice. RAG.",
			Glossary: []GlossaryEntry{
				{Term: "RAG", Definition: "Retrieval-augmented generation"},
				{Term: "LLM", Definition: "Large language model"},
			},
		})

		matches := result["matches"].([]any)
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		match := matches[0].(map[string]any)
		if match["definition"] != "Retrieval-augmented generation" {
			t.Errorf("expected definition filled in, got %v", match["definition"])
		}
		if result["glossary_terms_searched"] != 2 {
			t.Errorf("expected 2 searched terms, got %v", result["glossary_terms_searched"])
		}
	})

	t.Run("unknown reported term left unenriched", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: `{"matches": [{"term": "hallucinated"}]}`},
		}}
		svc := newTestService(client)

		result := svc.GlossaryLookup(context.Background(), GlossaryLookupRequest{
			Text:     "text",
			Glossary: []GlossaryEntry{{Term: "RAG", Definition: "def"}},
		})
		match := result["matches"].([]any)[0].(map[string]any)
		if _, ok := match["definition"]; ok {
			t.Error("unmatched term should not gain a definition")
		}
	})
}

func TestServiceOverrides(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: `{}`},
	}}
	svc := newTestService(client)

	result := svc.PolishContent(context.Background(), PolishRequest{
		Text:      "text",
		Overrides: Overrides{Model: "override-model"},
	})
	if result["model"] != "override-model" {
		t.Errorf("expected override model in metadata, got %v", result["model"])
	}
	if len(client.ChatRequests) != 1 {
		t.Fatalf("expected 1 chat request, got %d", len(client.ChatRequests))
	}
	if client.ChatRequests[0].Model != "override-model" {
		t.Errorf("expected override model on the wire, got %s", client.ChatRequests[0].Model)
	}
}
