package analysis

import (
	"encoding/json"
	"testing"
)

func TestCategoryJSON(t *testing.T) {
	t.Run("bare string is a leaf", func(t *testing.T) {
		var c Category
		if err := json.Unmarshal([]byte(`"Sports"`), &c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Name != "Sports" || len(c.Children) != 0 {
			t.Errorf("unexpected category: %+v", c)
		}
	})

	t.Run("node with children", func(t *testing.T) {
		raw := `{"name": "Technology", "children": ["AI", {"name": "Web", "children": ["Frontend"]}]}`
		var c Category
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Name != "Technology" || len(c.Children) != 2 {
			t.Fatalf("unexpected category: %+v", c)
		}
		if c.Children[0].Name != "AI" {
			t.Errorf("unexpected first child: %+v", c.Children[0])
		}
		if c.Children[1].Children[0].Name != "Frontend" {
			t.Errorf("unexpected nested child: %+v", c.Children[1])
		}
	})

	t.Run("invalid shape rejected", func(t *testing.T) {
		var c Category
		if err := json.Unmarshal([]byte(`42`), &c); err == nil {
			t.Error("expected error for numeric category")
		}
	})

	t.Run("leaf marshals as string", func(t *testing.T) {
		data, err := json.Marshal(Category{Name: "News"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `"News"` {
			t.Errorf("unexpected encoding: %s", data)
		}
	})

	t.Run("inner node marshals as object", func(t *testing.T) {
		data, err := json.Marshal(Category{Name: "Tech", Children: []Category{{Name: "AI"}}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"name":"Tech","children":["AI"]}` {
			t.Errorf("unexpected encoding: %s", data)
		}
	})
}
