package analysis

import (
	"fmt"
)

// defaultReadContext is the context padding applied when read_text omits it.
const defaultReadContext = 3

// State aggregates document and glossary state with the final-result fields
// for one analysis run. It is a two-state machine: RUNNING from construction
// until Finish, FINISHED afterwards. It is not safe for concurrent use; each
// run owns its own State.
type State struct {
	doc         *Document
	glossary    *Glossary
	categories  []Category
	maxKeywords int

	finished bool

	language             string
	title                string
	summary              string
	keywords             []string
	category             []string
	author               *string
	publishedBy          *string
	publishedAt          *string
	dateStart            *string
	dateEnd              *string
	dateDuration         *string
	location             *string
	venue                *string
	relatedPeople        []string
	relatedOrganizations []string
	relatedLinks         []string
}

// NewState creates the state for one analysis run.
func NewState(text string, glossary []GlossaryEntry, categories []Category, maxKeywords int) *State {
	return &State{
		doc:         NewDocument(text),
		glossary:    NewGlossary(glossary),
		categories:  categories,
		maxKeywords: maxKeywords,
	}
}

// TotalLines returns the number of lines in the document.
func (s *State) TotalLines() int { return s.doc.TotalLines() }

// TotalCharacters returns the number of characters in the document.
func (s *State) TotalCharacters() int { return s.doc.TotalCharacters() }

// MaxKeywords returns the configured keyword limit.
func (s *State) MaxKeywords() int { return s.maxKeywords }

// Categories returns the category tree supplied for classification.
func (s *State) Categories() []Category { return s.categories }

// HasGlossary reports whether any glossary entries were supplied.
func (s *State) HasGlossary() bool { return len(s.glossary.Entries()) > 0 }

// IsFinished reports whether finish_analysis has been observed.
func (s *State) IsFinished() bool { return s.finished }

// ReadLines reads a context-padded line range from the document.
func (s *State) ReadLines(start, end, context int) string {
	return s.doc.ReadLines(start, end, context)
}

// PolishAndAddContent records a polished section and returns the
// confirmation message fed back to the model.
func (s *State) PolishAndAddContent(polished string, start, end int, label string) string {
	r := s.doc.AddPolishedSection(polished, start, end, label)

	labelNote := ""
	if r.SectionLabel != "" {
		labelNote = fmt.Sprintf("Section label: %s\n", r.SectionLabel)
	}

	return fmt.Sprintf(
		"=== POLISHED CONTENT ADDED ===\n"+
			"Section #%d (from lines %d-%d)\n"+
			"%s"+
			"\n"+
			"SECTION SUMMARY:\n"+
			"  - Polished text: %d characters\n"+
			"  - Total sections so far: %d\n"+
			"  - Total polished content: %d characters\n"+
			"\n"+
			"Content preview: %s",
		r.SectionNumber, r.StartLine, r.EndLine, labelNote,
		r.PolishedCharCount, r.TotalSections, r.TotalPolishedChars, r.Preview,
	)
}

// LookupGlossary resolves terms against the glossary.
func (s *State) LookupGlossary(terms []string) string {
	return s.glossary.Lookup(terms)
}

// FinishArgs carries the finish_analysis payload.
type FinishArgs struct {
	Language             string
	Title                string
	Summary              string
	Keywords             []string
	Category             []string
	Author               *string
	PublishedBy          *string
	PublishedAt          *string
	DateStart            *string
	DateEnd              *string
	DateDuration         *string
	Location             *string
	Venue                *string
	RelatedPeople        []string
	RelatedOrganizations []string
	RelatedLinks         []string
}

// Finish freezes the final result fields and transitions the state machine
// to FINISHED. Keywords are truncated to the configured limit here and only
// here.
func (s *State) Finish(args FinishArgs) string {
	s.language = args.Language
	s.title = args.Title
	s.summary = args.Summary
	s.keywords = args.Keywords
	if len(s.keywords) > s.maxKeywords {
		s.keywords = s.keywords[:s.maxKeywords]
	}
	s.category = args.Category
	s.author = args.Author
	s.publishedBy = args.PublishedBy
	s.publishedAt = args.PublishedAt
	s.dateStart = args.DateStart
	s.dateEnd = args.DateEnd
	s.dateDuration = args.DateDuration
	s.location = args.Location
	s.venue = args.Venue
	s.relatedPeople = args.RelatedPeople
	s.relatedOrganizations = args.RelatedOrganizations
	s.relatedLinks = args.RelatedLinks
	s.finished = true

	return "Analysis complete."
}

// Dispatch routes a named tool operation to the corresponding state method.
// The tool set is a closed switch; an unrecognized name is an error and
// mutates nothing.
func (s *State) Dispatch(name string, args map[string]any) (string, error) {
	switch name {
	case ToolReadText:
		context := intArg(args, "context", defaultReadContext)
		return s.ReadLines(intArg(args, "start_line", 0), intArg(args, "end_line", 0), context), nil

	case ToolPolishAndAddContent:
		return s.PolishAndAddContent(
			stringArg(args, "polished_text"),
			intArg(args, "start_line", 0),
			intArg(args, "end_line", 0),
			stringArg(args, "section_label"),
		), nil

	case ToolLookupGlossary:
		return s.LookupGlossary(stringSliceArg(args, "terms")), nil

	case ToolFinishAnalysis:
		return s.Finish(FinishArgs{
			Language:             stringArg(args, "language"),
			Title:                stringArg(args, "title"),
			Summary:              stringArg(args, "summary"),
			Keywords:             stringSliceArg(args, "keywords"),
			Category:             stringSliceArg(args, "category"),
			Author:               optStringArg(args, "author"),
			PublishedBy:          optStringArg(args, "published_by"),
			PublishedAt:          optStringArg(args, "published_at"),
			DateStart:            optStringArg(args, "date_start"),
			DateEnd:              optStringArg(args, "date_end"),
			DateDuration:         optStringArg(args, "date_duration"),
			Location:             optStringArg(args, "location"),
			Venue:                optStringArg(args, "venue"),
			RelatedPeople:        stringSliceArg(args, "related_people"),
			RelatedOrganizations: stringSliceArg(args, "related_organizations"),
			RelatedLinks:         stringSliceArg(args, "related_links"),
		}), nil

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// Result builds the response snapshot for the current state. Valid in both
// the finished and the budget-exhausted case.
func (s *State) Result(iterationsUsed int) *Result {
	sections := s.doc.Sections()
	summaries := make([]SectionSummary, len(sections))
	for i, sec := range sections {
		summaries[i] = SectionSummary{
			SectionNumber:     i + 1,
			StartLine:         sec.StartLine,
			EndLine:           sec.EndLine,
			SectionLabel:      sec.SectionLabel,
			PolishedCharCount: sec.PolishedCharCount,
		}
	}

	language := s.language
	if language == "" {
		language = "unknown"
	}
	title := s.title
	if title == "" {
		title = "Untitled"
	}

	return &Result{
		Language:             language,
		Title:                title,
		Keywords:             emptyIfNil(s.keywords),
		Category:             emptyIfNil(s.category),
		Summary:              s.summary,
		Author:               s.author,
		PublishedBy:          s.publishedBy,
		PublishedAt:          s.publishedAt,
		DateStart:            s.dateStart,
		DateEnd:              s.dateEnd,
		DateDuration:         s.dateDuration,
		Location:             s.location,
		Venue:                s.venue,
		RelatedPeople:        s.relatedPeople,
		RelatedOrganizations: s.relatedOrganizations,
		RelatedLinks:         s.relatedLinks,
		Content:              s.doc.CleanedText(),
		PolishedSections:     summaries,
		GlossaryMatches:      s.glossary.Matches(),
		IterationsUsed:       iterationsUsed,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Argument coercion helpers. Tool arguments arrive as a generic JSON object;
// numbers decode as float64 and absent keys fall back to defaults.

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func optStringArg(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(item))
		}
	}
	return out
}

// truncate shortens a tool result for event payloads; messages fed back to
// the model stay untruncated.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
