package document

import "strings"

// Document is an immutable ordered sequence of structured lines. Edits
// produce a new Document via Splice; existing snapshots are never mutated,
// so a failed edit cannot corrupt state seen by a later one.
type Document struct {
	lines []Line
}

// Build splits text into physical lines, preserving each line's original
// terminator, and decomposes every line. Build(t).Render() == t for all t.
func Build(text string) *Document {
	var lines []Line
	rest := text
	for rest != "" {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			lines = append(lines, DecomposeLine(rest, EndNone))
			break
		}
		raw, ending := rest[:nl], EndLF
		if nl > 0 && rest[nl-1] == '\r' {
			raw, ending = rest[:nl-1], EndCRLF
		}
		lines = append(lines, DecomposeLine(raw, ending))
		rest = rest[nl+1:]
	}
	return &Document{lines: lines}
}

// Len returns the number of physical lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// LineAt returns the line at index i (0-based).
func (d *Document) LineAt(i int) Line {
	return d.lines[i]
}

// Render reassembles the raw text. For a Document built from text it is
// byte-identical to that text; for a spliced Document it reflects the
// replacement lines with everything else untouched.
func (d *Document) Render() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.Recompose())
	}
	return b.String()
}

// Splice returns a new Document with lines [start, start+length) replaced
// by repl. The receiver is left unchanged. repl may be empty, which deletes
// the span.
func (d *Document) Splice(start, length int, repl []Line) *Document {
	lines := make([]Line, 0, len(d.lines)-length+len(repl))
	lines = append(lines, d.lines[:start]...)
	lines = append(lines, repl...)
	lines = append(lines, d.lines[start+length:]...)
	return &Document{lines: lines}
}
