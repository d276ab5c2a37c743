// Package document models a text buffer as an ordered sequence of
// structured lines. Each physical line is decomposed into indentation,
// content, and trailing whitespace, with its original terminator captured
// per line so mixed-ending files round-trip byte for byte.
package document

import (
	"unicode"
	"unicode/utf8"
)

// Ending identifies the terminator of a physical line.
type Ending int

const (
	// EndNone marks the final line of a file that does not end with a newline.
	EndNone Ending = iota
	EndLF
	EndCRLF
)

// String returns a short tag for logs and error messages.
func (e Ending) String() string {
	switch e {
	case EndLF:
		return "lf"
	case EndCRLF:
		return "crlf"
	default:
		return "none"
	}
}

func (e Ending) terminator() string {
	switch e {
	case EndLF:
		return "\n"
	case EndCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// isBlank reports whether r is horizontal whitespace. Line terminators are
// never part of a decomposed line, so they are excluded explicitly.
func isBlank(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

// Line is one physical line split into its whitespace structure. The
// invariant is Indent + Content + Trailing + terminator == original line.
// Content carries no leading or trailing whitespace and no terminator.
type Line struct {
	Indent   string
	Content  string
	Trailing string
	Ending   Ending
}

// DecomposeLine splits raw into indentation, content, and trailing
// whitespace. An all-whitespace line has empty content and all of its
// characters assigned to Indent, which keeps the decomposition unique.
// raw must not contain a line terminator.
func DecomposeLine(raw string, ending Ending) Line {
	start := -1
	for i, r := range raw {
		if !isBlank(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return Line{Indent: raw, Ending: ending}
	}

	end := len(raw)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(raw[:end])
		if !isBlank(r) {
			break
		}
		end -= size
	}

	return Line{
		Indent:   raw[:start],
		Content:  raw[start:end],
		Trailing: raw[end:],
		Ending:   ending,
	}
}

// Recompose reassembles the exact physical line, terminator included.
func (l Line) Recompose() string {
	return l.Indent + l.Content + l.Trailing + l.Ending.terminator()
}
