package patch

import (
	"testing"

	"github.com/kvit-s/tokpatch/internal/document"
)

func TestApplySpanKeepsIndentDropsTrailing(t *testing.T) {
	doc := document.Build("a\nb\n\t\tfoo(x)  \nc\n")

	got := applySpan(doc, Span{Start: 2, Length: 1}, []string{"foo(y)"}).Render()
	if want := "a\nb\n\t\tfoo(y)\nc\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanPositionalDonors(t *testing.T) {
	// Each replacement line takes indentation from the matched line at the
	// same offset.
	doc := document.Build("if x {\n    do()\n        deep()\n}\n")

	got := applySpan(doc, Span{Start: 1, Length: 2}, []string{"other()", "deeper()"}).Render()
	if want := "if x {\n    other()\n        deeper()\n}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanExtraLinesInheritLastMatched(t *testing.T) {
	doc := document.Build("one\n  two\n  three\r\nfour\n")

	// Two matched lines, three replacements: the appended third line takes
	// indentation and the CRLF ending of the last matched line.
	got := applySpan(doc, Span{Start: 1, Length: 2}, []string{"a", "b", "c"}).Render()
	if want := "one\n  a\n  b\r\n  c\r\nfour\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanDeletion(t *testing.T) {
	doc := document.Build("keep\ndrop1\ndrop2\nkeep2\n")

	got := applySpan(doc, Span{Start: 1, Length: 2}, nil).Render()
	if want := "keep\nkeep2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanPreservesMissingFinalNewline(t *testing.T) {
	doc := document.Build("a\nfoo")

	got := applySpan(doc, Span{Start: 1, Length: 1}, []string{"bar"}).Render()
	if want := "a\nbar"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanGrowingUnterminatedTail(t *testing.T) {
	doc := document.Build("a\nfoo")

	// The interior inserted line needs a terminator even though its donor
	// is the unterminated last line; the final line stays unterminated.
	got := applySpan(doc, Span{Start: 1, Length: 1}, []string{"x", "y"}).Render()
	if want := "a\nx\ny"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanShrinkingToUnterminatedEnd(t *testing.T) {
	doc := document.Build("a\nb\nc")

	// Replacing the last two lines with one keeps the file unterminated.
	got := applySpan(doc, Span{Start: 1, Length: 2}, []string{"z"}).Render()
	if want := "a\nz"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySpanCRLFDonor(t *testing.T) {
	doc := document.Build("a\r\nb\r\nc\r\n")

	got := applySpan(doc, Span{Start: 1, Length: 1}, []string{"B"}).Render()
	if want := "a\r\nB\r\nc\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
