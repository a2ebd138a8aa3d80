package analysis

import "testing"

func TestExtractJSON(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		obj, ok := ExtractJSON(`{"is_messy": true, "reasoning": "ads everywhere"}`)
		if !ok {
			t.Fatal("expected parse success")
		}
		if obj["is_messy"] != true {
			t.Errorf("unexpected is_messy: %v", obj["is_messy"])
		}
	})

	t.Run("json code fence", func(t *testing.T) {
		obj, ok := ExtractJSON("```json\n{\"title\": \"Doc\"}\n```")
		if !ok {
			t.Fatal("expected parse success")
		}
		if obj["title"] != "Doc" {
			t.Errorf("unexpected title: %v", obj["title"])
		}
	})

	t.Run("plain code fence", func(t *testing.T) {
		obj, ok := ExtractJSON("```\n{\"a\": 1}\n```")
		if !ok {
			t.Fatal("expected parse success")
		}
		if obj["a"] != float64(1) {
			t.Errorf("unexpected value: %v", obj["a"])
		}
	})

	t.Run("object embedded in prose", func(t *testing.T) {
		obj, ok := ExtractJSON(`Here is my evaluation: {"is_messy": false} Hope that helps!`)
		if !ok {
			t.Fatal("expected parse success")
		}
		if obj["is_messy"] != false {
			t.Errorf("unexpected is_messy: %v", obj["is_messy"])
		}
	})

	t.Run("nested object", func(t *testing.T) {
		obj, ok := ExtractJSON(`The result: {"meta": {"lang": "en"}, "ok": true}`)
		if !ok {
			t.Fatal("expected parse success")
		}
		meta, ok := obj["meta"].(map[string]any)
		if !ok || meta["lang"] != "en" {
			t.Errorf("unexpected meta: %v", obj["meta"])
		}
	})

	t.Run("no object present", func(t *testing.T) {
		if _, ok := ExtractJSON("I could not produce a result."); ok {
			t.Error("expected parse failure")
		}
	})

	t.Run("malformed object", func(t *testing.T) {
		if _, ok := ExtractJSON(`{"broken": `); ok {
			t.Error("expected parse failure")
		}
	})
}
