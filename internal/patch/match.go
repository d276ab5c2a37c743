package patch

import (
	"strings"

	"github.com/kvit-s/tokpatch/internal/document"
)

// Mode identifies the matching strategy that located a hunk.
type Mode int

const (
	// ModeNone means no strategy matched.
	ModeNone Mode = iota
	// ModeStrict compares line content verbatim.
	ModeStrict
	// ModeFloating compares content with internal whitespace runs collapsed
	// to a single space. Tried only when strict matching finds nothing.
	ModeFloating
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeFloating:
		return "floating"
	default:
		return "none"
	}
}

// Span is a contiguous run of document lines: Length lines starting at
// 0-based index Start.
type Span struct {
	Start  int
	Length int
}

// collapseWhitespace trims s and squeezes every internal whitespace run to
// one space. Under this normalization "return  a+b" equals "return a+b",
// but "a+b" still differs from "a + b".
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// findMatch locates tokens in doc. Strict matching is tried first; floating
// only when strict finds nothing and floating is permitted. The first
// (lowest-index) match of the winning mode is returned along with the total
// number of candidate matches that mode produced, for diagnostics. The
// result is deterministic for a fixed document and token sequence.
func findMatch(doc *document.Document, tokens []string, floating bool) (Span, Mode, int, bool) {
	if span, n, ok := scan(doc, tokens, false); ok {
		return span, ModeStrict, n, true
	}
	if floating {
		if span, n, ok := scan(doc, tokens, true); ok {
			return span, ModeFloating, n, true
		}
	}
	return Span{}, ModeNone, 0, false
}

// scan walks every start index upward and reports the first window whose
// line contents equal tokens, plus how many windows matched in total.
func scan(doc *document.Document, tokens []string, floating bool) (Span, int, bool) {
	n := len(tokens)
	if n == 0 || n > doc.Len() {
		return Span{}, 0, false
	}

	want := tokens
	if floating {
		want = make([]string, n)
		for i, t := range tokens {
			want[i] = collapseWhitespace(t)
		}
	}

	first := -1
	count := 0
	for start := 0; start+n <= doc.Len(); start++ {
		ok := true
		for k := 0; k < n; k++ {
			got := doc.LineAt(start + k).Content
			if floating {
				got = collapseWhitespace(got)
			}
			if got != want[k] {
				ok = false
				break
			}
		}
		if ok {
			count++
			if first < 0 {
				first = start
			}
		}
	}

	if first < 0 {
		return Span{}, 0, false
	}
	return Span{Start: first, Length: n}, count, true
}
