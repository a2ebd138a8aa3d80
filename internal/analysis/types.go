package analysis

import (
	"encoding/json"
	"fmt"
)

// GlossaryEntry is a domain term with definition and optional aliases.
type GlossaryEntry struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Aliases    []string `json:"aliases,omitempty"`
}

// GlossaryMatch is a glossary term found during analysis. Occurrences counts
// lookup calls that resolved to the term, not textual occurrences.
type GlossaryMatch struct {
	Term        string `json:"term"`
	Definition  string `json:"definition"`
	Occurrences int    `json:"occurrences"`
}

// Category is one node of the classification tree. A leaf serializes as a
// plain string; an inner node as {"name": ..., "children": [...]}.
type Category struct {
	Name     string
	Children []Category
}

type categoryNode struct {
	Name     string     `json:"name"`
	Children []Category `json:"children,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a {name, children} object.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		c.Children = nil
		return nil
	}
	var node categoryNode
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("category must be a string or a {name, children} object: %w", err)
	}
	c.Name = node.Name
	c.Children = node.Children
	return nil
}

// MarshalJSON emits leaves as strings and inner nodes as objects.
func (c Category) MarshalJSON() ([]byte, error) {
	if len(c.Children) == 0 {
		return json.Marshal(c.Name)
	}
	return json.Marshal(categoryNode{Name: c.Name, Children: c.Children})
}

// PolishedSection is one accepted rewrite of an original line range.
type PolishedSection struct {
	StartLine         int    `json:"start_line"`
	EndLine           int    `json:"end_line"`
	PolishedText      string `json:"polished_text"`
	SectionLabel      string `json:"section_label,omitempty"`
	OriginalCharCount int    `json:"original_char_count"`
	PolishedCharCount int    `json:"polished_char_count"`
}

// SectionSummary is the per-section view included in the final result.
type SectionSummary struct {
	SectionNumber     int    `json:"section_number"`
	StartLine         int    `json:"start_line"`
	EndLine           int    `json:"end_line"`
	SectionLabel      string `json:"section_label,omitempty"`
	PolishedCharCount int    `json:"polished_char_count"`
}

// Result is the finalized analysis snapshot carried by the complete event.
type Result struct {
	Language             string           `json:"language"`
	Title                string           `json:"title"`
	Keywords             []string         `json:"keywords"`
	Category             []string         `json:"category"`
	Summary              string           `json:"summary"`
	Author               *string          `json:"author"`
	PublishedBy          *string          `json:"published_by"`
	PublishedAt          *string          `json:"published_at"`
	DateStart            *string          `json:"date_start"`
	DateEnd              *string          `json:"date_end"`
	DateDuration         *string          `json:"date_duration"`
	Location             *string          `json:"location"`
	Venue                *string          `json:"venue"`
	RelatedPeople        []string         `json:"related_people"`
	RelatedOrganizations []string         `json:"related_organizations"`
	RelatedLinks         []string         `json:"related_links"`
	Content              string           `json:"content"`
	PolishedSections     []SectionSummary `json:"polished_sections"`
	GlossaryMatches      []GlossaryMatch  `json:"glossary_matches"`
	IterationsUsed       int              `json:"iterations_used"`
	Mode                 string           `json:"mode,omitempty"`
	ChunksProcessed      int              `json:"chunks_processed,omitempty"`
	Warning              string           `json:"warning,omitempty"`
}

// Event is one entry of the analysis event stream.
type Event struct {
	Name string
	Data any
}

// EventSink receives events in emission order. Implementations must not
// retain the Data value past the call.
type EventSink func(Event)
