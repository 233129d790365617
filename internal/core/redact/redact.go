// Package redact masks personally identifying spans in free text before the
// text reaches the LLM provider or a training export. The same pass runs at
// classification time and at promotion time so the model trains on exactly
// what it saw live
package redact

import (
	"regexp"
	"sort"
	"strings"
)

// Kind tags the category of a masked span
type Kind string

const (
	// KindEmail is an email address span
	KindEmail Kind = "email"
	// KindPhone is a phone number span
	KindPhone Kind = "phone"
	// KindURL is a URL span
	KindURL Kind = "url"
	// KindHandle is an @mention style handle span
	KindHandle Kind = "handle"
	// KindNumber is a long digit run (account/card style) span
	KindNumber Kind = "number"
)

// placeholder returns the mask token for a kind, e.g. "[EMAIL]"
func placeholder(k Kind) string { return "[" + strings.ToUpper(string(k)) + "]" }

// Span records one masked region in the *original* input
// offsets are byte offsets, [Start,End)
type Span struct {
	Kind  Kind   `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"-"` // original text, never serialized
}

// Result is the outcome of a redaction pass
type Result struct {
	Text  string
	Spans []Span
}

// pattern order matters: URL before handle so "https://x.com/@a" masks as one
// URL, email before number so the digits inside an address don't double-hit
var patterns = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindURL, regexp.MustCompile(`(?i)\bhttps?://[^\s<>"']+`)},
	{KindEmail, regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)},
	{KindPhone, regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{2,4}\)[\s.\-]?)?\d{2,4}[\s.\-]\d{2,4}[\s.\-]\d{2,4}\b|\+\d{7,15}\b`)},
	{KindHandle, regexp.MustCompile(`(?i)(?:^|[\s(])(@[a-z0-9_.\-]{2,})`)},
	{KindNumber, regexp.MustCompile(`\b\d{7,}\b`)},
}

// Redact masks PII spans in s with placeholder tokens.
// Idempotent: placeholders contain no characters the patterns can match,
// so Redact(Redact(s).Text).Text == Redact(s).Text for any input
func Redact(s string) Result {
	if s == "" {
		return Result{}
	}

	type hit struct {
		kind       Kind
		start, end int
	}
	var hits []hit
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(s, -1) {
			start, end := loc[0], loc[1]
			// handle pattern captures the "@name" in group 1 to skip the
			// leading whitespace anchor
			if p.kind == KindHandle && len(loc) >= 4 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			hits = append(hits, hit{kind: p.kind, start: start, end: end})
		}
	}
	if len(hits) == 0 {
		return Result{Text: s}
	}

	// earlier start wins; on ties the longer span wins
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].end > hits[j].end
	})

	var b strings.Builder
	b.Grow(len(s))
	spans := make([]Span, 0, len(hits))
	pos := 0
	for _, h := range hits {
		if h.start < pos { // overlapped by a prior (longer or earlier) span
			continue
		}
		b.WriteString(s[pos:h.start])
		b.WriteString(placeholder(h.kind))
		spans = append(spans, Span{Kind: h.kind, Start: h.start, End: h.end, Text: s[h.start:h.end]})
		pos = h.end
	}
	b.WriteString(s[pos:])
	return Result{Text: b.String(), Spans: spans}
}
