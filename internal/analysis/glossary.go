package analysis

import (
	"fmt"
	"strings"
)

// Glossary matches query terms against supplied entries and tracks which
// entries have been hit. Matching is case-insensitive over an entry's term
// and aliases; the first matching entry wins.
type Glossary struct {
	entries []GlossaryEntry
	matches map[string]*GlossaryMatch // keyed by canonical term
	order   []string                  // canonical terms in first-match order
}

// NewGlossary creates a Glossary over the given entries (may be empty).
func NewGlossary(entries []GlossaryEntry) *Glossary {
	return &Glossary{
		entries: entries,
		matches: make(map[string]*GlossaryMatch),
	}
}

// Entries returns the glossary entries available for lookup.
func (g *Glossary) Entries() []GlossaryEntry { return g.entries }

// Matches returns the matched entries in first-match order. Each entry
// appears once; its occurrence count is the number of lookup calls that
// resolved to it.
func (g *Glossary) Matches() []GlossaryMatch {
	out := make([]GlossaryMatch, 0, len(g.order))
	for _, term := range g.order {
		out = append(out, *g.matches[term])
	}
	return out
}

// Lookup resolves each query term and returns a human-readable result block.
// Unmatched terms produce an explicit not-found line. Matched entries are
// recorded once, keyed by canonical term; repeat lookups increment the
// occurrence counter.
func (g *Glossary) Lookup(terms []string) string {
	var results []string

	for _, term := range terms {
		entry, ok := g.resolve(term)
		if !ok {
			results = append(results, fmt.Sprintf("- %s: (not found in glossary)", term))
			continue
		}

		if m, seen := g.matches[entry.Term]; seen {
			m.Occurrences++
		} else {
			g.matches[entry.Term] = &GlossaryMatch{
				Term:        entry.Term,
				Definition:  entry.Definition,
				Occurrences: 1,
			}
			g.order = append(g.order, entry.Term)
		}

		results = append(results, fmt.Sprintf("- %s: %s", entry.Term, entry.Definition))
	}

	if len(results) == 0 {
		return "No terms found in glossary."
	}
	return strings.Join(results, "\n")
}

func (g *Glossary) resolve(term string) (GlossaryEntry, bool) {
	lower := strings.ToLower(term)
	for _, entry := range g.entries {
		if strings.ToLower(entry.Term) == lower {
			return entry, true
		}
		for _, alias := range entry.Aliases {
			if strings.ToLower(alias) == lower {
				return entry, true
			}
		}
	}
	return GlossaryEntry{}, false
}
