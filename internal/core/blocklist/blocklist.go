// Package blocklist implements the deterministic layer-1 phrase matcher.
// Terms are admin-curated crisis phrases; a hit is a hard safety signal
// that holds the comment regardless of what the classifier says downstream
package blocklist

import (
	"strings"

	"lifering/internal/core/normalize"
)

// Hit is a single matched term with its span over the normalized text
type Hit struct {
	Term  string // the configured term, normalized form
	Start int    // byte offset into the normalized text, inclusive
	End   int    // exclusive
}

// Matcher scans normalized comment text for configured terms.
// Build once per settings snapshot; Match is safe for concurrent use
type Matcher struct {
	norm  *normalize.Normalizer
	ac    *acAutomaton
	acGap *acAutomaton // terms with punctuation/space stripped, for gapped inputs
	terms []string     // normalized terms, index-aligned with AC pattern ids
}

// New compiles a matcher from raw terms. Terms are normalized through the
// same pipeline as the input text so width/leet/case evasion still matches.
// Empty and duplicate terms are dropped
func New(terms []string) *Matcher {
	n := normalize.New()
	ac := newAutomaton()
	acGap := newAutomaton()
	kept := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		nt := n.Normalize(t)
		if nt == "" {
			continue
		}
		if _, dup := seen[nt]; dup {
			continue
		}
		seen[nt] = struct{}{}
		id := len(kept)
		ac.AddPattern([]byte(nt), id)
		if gap := normalize.BuildShadows(nt).NoPunct; gap != "" && gap != nt {
			acGap.AddPattern([]byte(gap), id)
		} else {
			acGap.AddPattern([]byte(nt), id)
		}
		kept = append(kept, nt)
	}
	ac.Build()
	acGap.Build()
	return &Matcher{norm: n, ac: ac, acGap: acGap, terms: kept}
}

// Len reports the number of compiled terms
func (m *Matcher) Len() int { return len(m.terms) }

// Match returns the first configured term found in text, scanning the
// normalized form and its no-punct shadow so "e.n.d i.t a.l.l" still hits.
// ok is false when nothing matched
func (m *Matcher) Match(text string) (hit Hit, ok bool) {
	if len(m.terms) == 0 || strings.TrimSpace(text) == "" {
		return Hit{}, false
	}
	base := m.norm.Normalize(text)
	if h, found := m.scan(m.ac, base); found {
		return h, true
	}
	// gapped projections: punctuation stripped, repeat runs squashed
	sh := normalize.BuildShadows(base)
	if sh.RepeatSquash != base {
		if h, found := m.scan(m.ac, sh.RepeatSquash); found {
			return h, true
		}
	}
	if sh.NoPunct != base {
		if h, found := m.scan(m.acGap, sh.NoPunct); found {
			return h, true
		}
	}
	return Hit{}, false
}

// scan runs an automaton and keeps the earliest-ending match
func (m *Matcher) scan(ac *acAutomaton, s string) (Hit, bool) {
	var out Hit
	found := false
	ac.FindAll([]byte(s), func(end, id int) bool {
		// span length is approximate on shadow scans; Term is authoritative
		start := end - len(m.terms[id])
		if start < 0 {
			start = 0
		}
		out = Hit{Term: m.terms[id], Start: start, End: end}
		found = true
		return false // first hit wins
	})
	return out, found
}
