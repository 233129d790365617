package blocklist

import "testing"

func TestMatcher_Table(t *testing.T) {
	m := New([]string{"end it all", "kms", "no reason to live"})

	tests := []struct {
		name string
		in   string
		term string
		hit  bool
	}{
		{"plain hit", "i want to end it all tonight", "end it all", true},
		{"case fold", "I Want To END IT ALL", "end it all", true},
		{"leet evasion", "going to 3nd 1t @ll", "end it all", true},
		{"dotted gap evasion", "e.n.d i.t a.l.l", "end it all", true},
		{"short slang", "kms lol", "kms", true},
		{"phrase inside sentence", "there is no reason to live here anymore", "no reason to live", true},
		{"clean text", "lovely weather we are having", "", false},
		{"empty input", "", "", false},
		{"whitespace only", "   \t\n", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := m.Match(tc.in)
			if ok != tc.hit {
				t.Fatalf("Match(%q) ok = %v, want %v", tc.in, ok, tc.hit)
			}
			if ok && hit.Term != tc.term {
				t.Fatalf("Match(%q) term = %q, want %q", tc.in, hit.Term, tc.term)
			}
		})
	}
}

func TestNew_DropsEmptyAndDuplicates(t *testing.T) {
	m := New([]string{"kms", "", "KMS", "  ", "kms"})
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestMatcher_EmptyTermSet(t *testing.T) {
	m := New(nil)
	if _, ok := m.Match("anything at all"); ok {
		t.Fatalf("empty matcher should never hit")
	}
}

func TestDefaultTerms_Loads(t *testing.T) {
	terms, err := DefaultTerms()
	if err != nil {
		t.Fatalf("DefaultTerms: %v", err)
	}
	if len(terms) == 0 {
		t.Fatalf("expected shipped terms")
	}
	m := New(terms)
	if m.Len() == 0 {
		t.Fatalf("no terms survived compilation")
	}
}
