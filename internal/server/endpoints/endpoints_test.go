package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lectern-ai/lectern/internal/analysis"
	"github.com/lectern-ai/lectern/internal/providers"
	"github.com/lectern-ai/lectern/internal/svcctx"
)

func testServices(client *providers.MockClient) *svcctx.Services {
	settings := func() analysis.Settings {
		return analysis.Settings{Model: "test-model", MaxIterations: 20, MaxKeywords: 10}
	}
	factory := func(providers.ClientConfig) providers.ChatStreamer { return client }
	return &svcctx.Services{
		Analysis: analysis.NewService(settings, factory, nil),
	}
}

func serveWithServices(t *testing.T, ep interface {
	Route() (string, string, http.HandlerFunc)
}, client *providers.MockClient, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	_, _, handler := ep.Route()
	req = req.WithContext(svcctx.WithServices(req.Context(), testServices(client)))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	ep := &HealthEndpoint{}
	method, path, handler := ep.Route()
	if method != "GET" || path != "/health" {
		t.Errorf("unexpected route: %s %s", method, path)
	}
	if ep.RequiresInit() {
		t.Error("health should not require init")
	}

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("unexpected status: %s", resp.Status)
	}
}

func TestStudyTextEndpoint(t *testing.T) {
	t.Run("empty text rejected", func(t *testing.T) {
		rec := serveWithServices(t, &StudyTextEndpoint{}, &providers.MockClient{},
			httptest.NewRequest("POST", "/study_text", strings.NewReader(`{"text": ""}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		rec := serveWithServices(t, &StudyTextEndpoint{}, &providers.MockClient{},
			httptest.NewRequest("POST", "/study_text", strings.NewReader(`not json`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("streams SSE events to completion", func(t *testing.T) {
		client := &providers.MockClient{
			Turns: []providers.MockTurn{
				{ToolDeltas: []providers.ToolCallDelta{
					{Index: 0, ID: "call_0", Name: "finish_analysis",
						Arguments: `{"language": "en-US", "title": "Doc", "keywords": ["k"], "category": []}`},
				}},
			},
		}
		rec := serveWithServices(t, &StudyTextEndpoint{}, client,
			httptest.NewRequest("POST", "/study_text", strings.NewReader(`{"text": "hello world"}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
			t.Errorf("unexpected content type: %s", ct)
		}

		body := rec.Body.String()
		for _, name := range []string{"event: start", "event: iteration", "event: tool_call", "event: tool_result", "event: complete"} {
			if !strings.Contains(body, name) {
				t.Errorf("missing %s in stream:\n%s", name, body)
			}
		}
		if !strings.Contains(body, `"title":"Doc"`) {
			t.Errorf("complete event missing result:\n%s", body)
		}
	})

	t.Run("missing service returns 503", func(t *testing.T) {
		_, _, handler := (&StudyTextEndpoint{}).Route()
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest("POST", "/study_text", strings.NewReader(`{"text": "hi"}`)))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})
}

func TestCleanlinessEndpoint(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: `{"is_messy": true, "cleanliness_score": 40, "reasoning": "HTML artifacts."}`},
	}}
	rec := serveWithServices(t, &CleanlinessEndpoint{}, client,
		httptest.NewRequest("POST", "/evaluate_article_cleanliness", strings.NewReader(`{"text": "messy <div> text"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result["is_messy"] != true {
		t.Errorf("unexpected is_messy: %v", result["is_messy"])
	}
	if result["model"] != "test-model" {
		t.Errorf("missing model metadata: %v", result["model"])
	}
}

func TestPolishEndpoint(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: `{"polished_content": "Clean."}`},
	}}
	rec := serveWithServices(t, &PolishEndpoint{}, client,
		httptest.NewRequest("POST", "/polish_content", strings.NewReader(`{"text": "raw"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result map[string]any
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["polished_content"] != "Clean." {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestFinalizeEndpoint(t *testing.T) {
	client := &providers.MockClient{ChatResults: []*providers.ChatResult{
		{Content: `{"language": "en-US", "title": "Doc"}`},
	}}
	rec := serveWithServices(t, &FinalizeEndpoint{}, client,
		httptest.NewRequest("POST", "/finalize_content", strings.NewReader(`{"text": "content", "categories": ["Tech"]}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result map[string]any
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["title"] != "Doc" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestGlossaryLookupEndpoint(t *testing.T) {
	t.Run("glossary required", func(t *testing.T) {
		rec := serveWithServices(t, &GlossaryLookupEndpoint{}, &providers.MockClient{},
			httptest.NewRequest("POST", "/glossary_lookup", strings.NewReader(`{"text": "hi"}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns enriched matches", func(t *testing.T) {
		client := &providers.MockClient{ChatResults: []*providers.ChatResult{
			{Content: `{"matches": [{"term": "RAG", "occurrences": 1}]}`},
		}}
		body := `{"text": "RAG is used.", "glossary": [{"term": "RAG", "definition": "Retrieval-augmented generation"}]}`
		rec := serveWithServices(t, &GlossaryLookupEndpoint{}, client,
			httptest.NewRequest("POST", "/glossary_lookup", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var result map[string]any
		json.Unmarshal(rec.Body.Bytes(), &result)
		matches := result["matches"].([]any)
		match := matches[0].(map[string]any)
		if match["definition"] != "Retrieval-augmented generation" {
			t.Errorf("expected definition attached: %v", match)
		}
	})
}
