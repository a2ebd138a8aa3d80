package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonObjectRE matches a JSON object with at most one level of nesting, which
// covers the response shapes the single-turn prompts ask for.
var jsonObjectRE = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// ExtractJSON pulls a JSON object out of a model response that may wrap it in
// markdown code fences or surrounding prose. Returns the decoded object, or
// ok=false when no parseable object is found.
func ExtractJSON(content string) (map[string]any, bool) {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "{") {
		if m := jsonObjectRE.FindString(s); m != "" {
			s = m
		}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	return out, true
}
