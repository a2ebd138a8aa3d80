package analysis

import (
	"strings"
	"testing"
)

func TestStateFinish(t *testing.T) {
	t.Run("keywords truncated to limit", func(t *testing.T) {
		s := NewState("text", nil, nil, 3)
		msg := s.Finish(FinishArgs{
			Language: "en-US",
			Title:    "A Title",
			Keywords: []string{"a", "b", "c", "d", "e"},
			Category: []string{"Tech"},
		})
		if msg != "Analysis complete." {
			t.Errorf("unexpected finish message: %q", msg)
		}
		if !s.IsFinished() {
			t.Error("state should be finished")
		}
		res := s.Result(1)
		if len(res.Keywords) != 3 {
			t.Errorf("expected 3 keywords, got %d", len(res.Keywords))
		}
	})

	t.Run("defaults for missing language and title", func(t *testing.T) {
		s := NewState("text", nil, nil, 10)
		res := s.Result(0)
		if res.Language != "unknown" {
			t.Errorf("expected unknown language, got %q", res.Language)
		}
		if res.Title != "Untitled" {
			t.Errorf("expected Untitled, got %q", res.Title)
		}
		if res.Keywords == nil || res.Category == nil {
			t.Error("keywords and category should be empty slices, not nil")
		}
	})
}

func TestStateDispatch(t *testing.T) {
	t.Run("read_text with default context", func(t *testing.T) {
		s := NewState(linesText(100), nil, nil, 10)
		out, err := s.Dispatch(ToolReadText, map[string]any{
			"start_line": float64(50), "end_line": float64(55),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Default context is 3 lines either side.
		if !strings.Contains(out, "47: line 47") || !strings.Contains(out, "58: line 58") {
			t.Errorf("expected default context padding:\n%s", out)
		}
	})

	t.Run("polish_and_add_content returns receipt", func(t *testing.T) {
		s := NewState(linesText(10), nil, nil, 10)
		out, err := s.Dispatch(ToolPolishAndAddContent, map[string]any{
			"polished_text": "Cleaned up.",
			"start_line":    float64(1),
			"end_line":      float64(3),
			"section_label": "Intro",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "=== POLISHED CONTENT ADDED ===") {
			t.Errorf("missing receipt header:\n%s", out)
		}
		if !strings.Contains(out, "Section #1 (from lines 1-3)") {
			t.Errorf("missing section line:\n%s", out)
		}
		if !strings.Contains(out, "Section label: Intro") {
			t.Errorf("missing label note:\n%s", out)
		}
	})

	t.Run("lookup_glossary", func(t *testing.T) {
		s := NewState("text", []GlossaryEntry{{Term: "API", Definition: "Application programming interface"}}, nil, 10)
		out, err := s.Dispatch(ToolLookupGlossary, map[string]any{
			"terms": []any{"api"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "- API: Application programming interface") {
			t.Errorf("unexpected lookup result: %q", out)
		}
	})

	t.Run("finish_analysis carries optional fields", func(t *testing.T) {
		s := NewState("text", nil, nil, 10)
		_, err := s.Dispatch(ToolFinishAnalysis, map[string]any{
			"language": "ja-JP",
			"title":    "Doc",
			"keywords": []any{"k1"},
			"category": []any{"News"},
			"author":   "Someone",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res := s.Result(2)
		if res.Author == nil || *res.Author != "Someone" {
			t.Error("expected author to be set")
		}
		if res.PublishedBy != nil {
			t.Error("expected absent publisher to stay nil")
		}
		if res.IterationsUsed != 2 {
			t.Errorf("expected 2 iterations used, got %d", res.IterationsUsed)
		}
	})

	t.Run("unknown tool is an error", func(t *testing.T) {
		s := NewState("text", nil, nil, 10)
		_, err := s.Dispatch("delete_everything", map[string]any{})
		if err == nil {
			t.Fatal("expected error for unknown tool")
		}
		if !strings.Contains(err.Error(), "unknown tool: delete_everything") {
			t.Errorf("unexpected error: %v", err)
		}
		if s.IsFinished() {
			t.Error("unknown tool must not mutate state")
		}
	})
}

func TestStateResultSections(t *testing.T) {
	s := NewState(linesText(20), nil, nil, 10)
	s.PolishAndAddContent("First.", 1, 5, "Opening")
	s.PolishAndAddContent("Second.", 6, 10, "")

	res := s.Result(4)
	if res.Content != "First.\n\nSecond." {
		t.Errorf("unexpected content: %q", res.Content)
	}
	if len(res.PolishedSections) != 2 {
		t.Fatalf("expected 2 section summaries, got %d", len(res.PolishedSections))
	}
	if res.PolishedSections[0].SectionNumber != 1 || res.PolishedSections[0].SectionLabel != "Opening" {
		t.Errorf("unexpected first summary: %+v", res.PolishedSections[0])
	}
	if res.PolishedSections[1].StartLine != 6 || res.PolishedSections[1].EndLine != 10 {
		t.Errorf("unexpected second summary: %+v", res.PolishedSections[1])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short string should pass through, got %q", got)
	}
	if got := truncate("hello", 3); got != "hel" {
		t.Errorf("expected hel, got %q", got)
	}
	// Multibyte runes count as one character each.
	if got := truncate("日本語テキスト", 3); got != "日本語" {
		t.Errorf("expected rune-aware truncation, got %q", got)
	}
}
