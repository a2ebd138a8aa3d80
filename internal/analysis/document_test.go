package analysis

import (
	"fmt"
	"strings"
	"testing"
)

func linesText(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestDocumentCounts(t *testing.T) {
	d := NewDocument("abc\ndef")
	if d.TotalLines() != 2 {
		t.Errorf("expected 2 lines, got %d", d.TotalLines())
	}
	if d.TotalCharacters() != 7 {
		t.Errorf("expected 7 characters, got %d", d.TotalCharacters())
	}
}

func TestDocumentReadLines(t *testing.T) {
	d := NewDocument(linesText(100))

	t.Run("middle range with context", func(t *testing.T) {
		out := d.ReadLines(50, 55, 3)
		if !strings.Contains(out, "47: line 47") {
			t.Errorf("expected context line 47 in output:\n%s", out)
		}
		if !strings.Contains(out, "58: line 58") {
			t.Errorf("expected context line 58 in output:\n%s", out)
		}
		if strings.Contains(out, "46: line 46") {
			t.Error("context should stop at line 47")
		}
		if strings.Contains(out, "[START OF DOCUMENT]") || strings.Contains(out, "[END OF DOCUMENT") {
			t.Error("middle range should carry no boundary markers")
		}
	})

	t.Run("start of document marker", func(t *testing.T) {
		out := d.ReadLines(1, 10, 3)
		if !strings.Contains(out, "[START OF DOCUMENT]") {
			t.Errorf("missing start marker:\n%s", out)
		}
		if !strings.Contains(out, "1: line 1") {
			t.Errorf("missing first line:\n%s", out)
		}
	})

	t.Run("end of document marker and clamping note", func(t *testing.T) {
		out := d.ReadLines(95, 120, 3)
		if !strings.Contains(out, "[END OF DOCUMENT - line 100 is the last line]") {
			t.Errorf("missing end marker:\n%s", out)
		}
		if !strings.Contains(out, "(requested up to line 120, but document only has 100 lines)") {
			t.Errorf("missing clamp note:\n%s", out)
		}
		if !strings.Contains(out, "100: line 100") {
			t.Errorf("missing last line:\n%s", out)
		}
	})

	t.Run("start past end of document", func(t *testing.T) {
		out := d.ReadLines(150, 160, 3)
		if !strings.Contains(out, "[END OF DOCUMENT] No content at lines 150-160.") {
			t.Errorf("expected end-of-document message, got:\n%s", out)
		}
		if !strings.Contains(out, "Document has 100 lines total.") {
			t.Errorf("expected total line count, got:\n%s", out)
		}
	})

	t.Run("polished totals reported", func(t *testing.T) {
		d2 := NewDocument(linesText(10))
		d2.AddPolishedSection("cleaned up", 1, 3, "")
		out := d2.ReadLines(1, 5, 0)
		if !strings.Contains(out, "[Polished sections: 1, Total chars: 10]") {
			t.Errorf("expected polished totals note:\n%s", out)
		}
	})
}

func TestDocumentAddPolishedSection(t *testing.T) {
	d := NewDocument("aaaa\nbbbb\ncccc\ndddd")

	r := d.AddPolishedSection("Polished text.", 1, 2, "Intro")
	if r.SectionNumber != 1 {
		t.Errorf("expected section 1, got %d", r.SectionNumber)
	}
	if r.PolishedCharCount != len("Polished text.") {
		t.Errorf("unexpected polished char count %d", r.PolishedCharCount)
	}
	if r.SectionLabel != "Intro" {
		t.Errorf("unexpected label %q", r.SectionLabel)
	}

	r2 := d.AddPolishedSection("More.", 3, 4, "")
	if r2.TotalSections != 2 {
		t.Errorf("expected 2 total sections, got %d", r2.TotalSections)
	}
	if r2.TotalPolishedChars != len("Polished text.")+len("More.") {
		t.Errorf("unexpected running total %d", r2.TotalPolishedChars)
	}

	sections := d.Sections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 stored sections, got %d", len(sections))
	}
	if sections[0].OriginalCharCount != 8 {
		t.Errorf("expected 8 original chars for lines 1-2, got %d", sections[0].OriginalCharCount)
	}
}

func TestDocumentCleanedText(t *testing.T) {
	d := NewDocument(linesText(10))
	if d.CleanedText() != "" {
		t.Error("expected empty cleaned text with no sections")
	}

	d.AddPolishedSection("First part.", 1, 3, "")
	d.AddPolishedSection("Second part.", 4, 6, "")
	if got := d.CleanedText(); got != "First part.\n\nSecond part." {
		t.Errorf("unexpected cleaned text: %q", got)
	}
}
