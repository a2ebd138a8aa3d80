package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Document is a line-addressable view of the source text plus the
// append-only list of accepted polished sections. The source text, line
// array, and character count are fixed at construction.
type Document struct {
	text     string
	lines    []string
	chars    int
	sections []PolishedSection
}

// NewDocument creates a Document over the given text.
func NewDocument(text string) *Document {
	return &Document{
		text:  text,
		lines: strings.Split(text, "\n"),
		chars: utf8.RuneCountInString(text),
	}
}

// TotalLines returns the number of lines in the document.
func (d *Document) TotalLines() int { return len(d.lines) }

// TotalCharacters returns the number of characters in the document.
func (d *Document) TotalCharacters() int { return d.chars }

// Sections returns the polished sections in insertion order.
func (d *Document) Sections() []PolishedSection { return d.sections }

// ReadLines returns a line-numbered excerpt for the 1-indexed inclusive
// range [start, end], padded with context lines on both sides. The range is
// clamped to document bounds; a start past the last line returns an explicit
// end-of-document message instead of an error.
func (d *Document) ReadLines(start, end, context int) string {
	total := len(d.lines)

	if start > total {
		return fmt.Sprintf(
			"[END OF DOCUMENT] No content at lines %d-%d. Document has %d lines total. "+
				"You have reached the end of the document.",
			start, end, total,
		)
	}

	actualEnd := end
	if actualEnd > total {
		actualEnd = total
	}

	startIdx := start - 1 - context
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := actualEnd + context
	if endIdx > total {
		endIdx = total
	}

	numbered := make([]string, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		numbered = append(numbered, fmt.Sprintf("%d: %s", i+1, d.lines[i]))
	}

	var notes []string
	if start == 1 {
		notes = append(notes, "[START OF DOCUMENT]")
	}
	if actualEnd >= total {
		notes = append(notes, fmt.Sprintf("[END OF DOCUMENT - line %d is the last line]", total))
	}
	if end > total {
		notes = append(notes, fmt.Sprintf("(requested up to line %d, but document only has %d lines)", end, total))
	}
	notes = append(notes, fmt.Sprintf(
		"[Polished sections: %d, Total chars: %d]",
		len(d.sections), d.totalPolishedChars(),
	))

	return strings.Join(notes, "\n") + "\n\n" + strings.Join(numbered, "\n")
}

// SectionReceipt summarizes one accepted polished section and the running
// totals after it was added.
type SectionReceipt struct {
	SectionNumber      int
	StartLine          int
	EndLine            int
	SectionLabel       string
	PolishedCharCount  int
	TotalSections      int
	TotalPolishedChars int
	Preview            string
}

// AddPolishedSection records a polished rewrite of the 1-indexed inclusive
// line range [start, end]. The original character count is computed from the
// raw line span, clamped to document bounds.
func (d *Document) AddPolishedSection(polished string, start, end int, label string) SectionReceipt {
	originalChars := 0
	lo := start - 1
	if lo < 0 {
		lo = 0
	}
	hi := end
	if hi > len(d.lines) {
		hi = len(d.lines)
	}
	for i := lo; i < hi; i++ {
		originalChars += utf8.RuneCountInString(d.lines[i])
	}

	polishedChars := utf8.RuneCountInString(polished)
	d.sections = append(d.sections, PolishedSection{
		StartLine:         start,
		EndLine:           end,
		PolishedText:      polished,
		SectionLabel:      label,
		OriginalCharCount: originalChars,
		PolishedCharCount: polishedChars,
	})

	return SectionReceipt{
		SectionNumber:      len(d.sections),
		StartLine:          start,
		EndLine:            end,
		SectionLabel:       label,
		PolishedCharCount:  polishedChars,
		TotalSections:      len(d.sections),
		TotalPolishedChars: d.totalPolishedChars(),
		Preview:            preview(polished, 200),
	}
}

// CleanedText joins all polished texts with blank-line separators.
// Returns the empty string if no sections exist.
func (d *Document) CleanedText() string {
	if len(d.sections) == 0 {
		return ""
	}
	texts := make([]string, len(d.sections))
	for i, s := range d.sections {
		texts[i] = s.PolishedText
	}
	return strings.Join(texts, "\n\n")
}

func (d *Document) totalPolishedChars() int {
	total := 0
	for _, s := range d.sections {
		total += s.PolishedCharCount
	}
	return total
}

// preview returns at most n runes of s, with an ellipsis when truncated.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
