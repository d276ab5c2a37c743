package patch

import "github.com/kvit-s/tokpatch/internal/document"

// applySpan replaces the matched span with the replacement tokens and
// returns a new document. Replacement line j inherits indentation and line
// ending from the matched line at the same offset; once the replacement
// outgrows the match, the extra lines inherit from the last matched line so
// appended lines align with the block they extend. Trailing whitespace of
// replaced lines is dropped. An empty token slice deletes the span.
func applySpan(doc *document.Document, span Span, tokens []string) *document.Document {
	if len(tokens) == 0 {
		return doc.Splice(span.Start, span.Length, nil)
	}

	last := span.Start + span.Length - 1
	reachesEnd := span.Start+span.Length == doc.Len()

	// When the match includes an unterminated final line, interior
	// replacement lines still need a terminator. Borrow it from the line
	// just above the end of the match.
	fallback := document.EndLF
	if last > 0 {
		if e := doc.LineAt(last - 1).Ending; e != document.EndNone {
			fallback = e
		}
	}

	repl := make([]document.Line, len(tokens))
	for j, tok := range tokens {
		donor := doc.LineAt(min(span.Start+j, last))
		ending := donor.Ending
		if reachesEnd {
			if j == len(tokens)-1 {
				// The new last line of the file keeps the old last line's
				// ending, preserving a missing final newline.
				ending = doc.LineAt(doc.Len() - 1).Ending
			} else if ending == document.EndNone {
				ending = fallback
			}
		}
		repl[j] = document.Line{Indent: donor.Indent, Content: tok, Ending: ending}
	}

	return doc.Splice(span.Start, span.Length, repl)
}
