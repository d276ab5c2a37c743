// Package report renders the per-hunk outcome of a patch run for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/kvit-s/tokpatch/internal/patch"
)

var (
	appliedColor = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
	modeColor    = color.New(color.FgYellow)
	hintColor    = color.New(color.FgWhite, color.Faint)
)

// Options controls what the report includes.
type Options struct {
	// Diff appends a unified diff of the whole document when anything was
	// applied. Name labels the diff; Before is the pre-patch text.
	Diff   bool
	Name   string
	Before string
}

// Write renders one line per hunk, a summary line, and optionally a
// unified diff, to w.
func Write(w io.Writer, res *patch.Result, opts Options) error {
	for _, o := range res.Outcomes {
		writeOutcome(w, o)
	}

	applied := res.AppliedCount()
	fmt.Fprintf(w, "%d/%d hunks applied\n", applied, len(res.Outcomes))

	if opts.Diff && applied > 0 {
		diff, err := unifiedDiff(opts.Before, res.Text, opts.Name)
		if err != nil {
			return fmt.Errorf("generate diff: %w", err)
		}
		if diff != "" {
			fmt.Fprintln(w)
			io.WriteString(w, diff)
		}
	}
	return nil
}

func writeOutcome(w io.Writer, o patch.Outcome) {
	label := fmt.Sprintf("hunk %d", o.Index+1)
	if o.Description != "" {
		label += " (" + o.Description + ")"
	}

	if o.Applied() {
		tag := fmt.Sprintf("%s match at line %d", o.Mode, o.Span.Start+1)
		if o.Candidates > 1 {
			tag += fmt.Sprintf(", %d candidates, first used", o.Candidates)
		}
		fmt.Fprintf(w, "%s: %s [%s]\n", label, appliedColor.Sprint("applied"), modeColor.Sprint(tag))
		return
	}

	fmt.Fprintf(w, "%s: %s: %s\n", label, failedColor.Sprint("failed"), o.Reason)
	if o.SimilarLine > 0 && o.Similarity >= 0.4 {
		hintColor.Fprintf(w, "  closest line %d: %q (%.0f%% similar)\n",
			o.SimilarLine, strings.TrimSpace(o.SimilarText), o.Similarity*100)
	}
}

// unifiedDiff generates a unified diff between old and new content.
func unifiedDiff(oldContent, newContent, filename string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: filename,
		ToFile:   filename,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
