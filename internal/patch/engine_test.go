package patch

import (
	"errors"
	"reflect"
	"testing"
)

func TestApplySingleHunk(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{Description: "rename call", SearchBlock: "foo(x)", ReplaceBlock: "foo(y)"},
	}}

	res, err := e.Apply("a\n\t\tfoo(x)  \nb\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "a\n\t\tfoo(y)\nb\n"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if len(res.Outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(res.Outcomes))
	}
	o := res.Outcomes[0]
	if !o.Applied() || o.Mode != ModeStrict {
		t.Errorf("outcome = %+v, want applied via strict", o)
	}
	if o.Description != "rename call" {
		t.Errorf("Description = %q", o.Description)
	}
}

func TestApplySequencing(t *testing.T) {
	// Hunk 2's search block only exists after hunk 1 inserted it.
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "start", ReplaceBlock: "start\ninserted"},
		{SearchBlock: "inserted", ReplaceBlock: "patched"},
	}}

	res, err := e.Apply("start\nend\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "start\npatched\nend\n"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	for i, o := range res.Outcomes {
		if !o.Applied() {
			t.Errorf("hunk %d not applied: %+v", i+1, o)
		}
	}
}

func TestApplyPartialFailure(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "no such line", ReplaceBlock: "whatever"},
		{SearchBlock: "beta", ReplaceBlock: "BETA"},
	}}

	res, err := e.Apply("alpha\nbeta\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "alpha\nBETA\n"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}

	if res.Outcomes[0].Status != StatusFailed || res.Outcomes[0].Mode != ModeNone {
		t.Errorf("hunk 1 outcome = %+v, want failed/none", res.Outcomes[0])
	}
	if res.Outcomes[0].Reason == "" {
		t.Error("failed hunk should carry a reason")
	}
	if res.Outcomes[1].Status != StatusApplied {
		t.Errorf("hunk 2 outcome = %+v, want applied", res.Outcomes[1])
	}
	if res.AppliedCount() != 1 || res.AllApplied() {
		t.Errorf("AppliedCount = %d AllApplied = %v", res.AppliedCount(), res.AllApplied())
	}
}

func TestApplyDeletion(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "drop me\nand me", ReplaceBlock: ""},
	}}

	res, err := e.Apply("keep\ndrop me\nand me\nkeep too\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "keep\nkeep too\n"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestApplyFloatingOutcome(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "return   a+b", ReplaceBlock: "return a - b"},
	}}

	res, err := e.Apply("  return a+b\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcomes[0].Mode != ModeFloating {
		t.Errorf("mode = %v, want floating", res.Outcomes[0].Mode)
	}
	if want := "  return a - b\n"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestApplyDeterminism(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "dup", ReplaceBlock: "DUP"},
		{SearchBlock: "missing", ReplaceBlock: "x"},
	}}
	text := "dup\ndup\nother\n"

	first, err := e.Apply(text, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		res, err := e.Apply(text, p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Text != first.Text {
			t.Fatalf("iteration %d: text differs", i)
		}
		if !reflect.DeepEqual(res.Outcomes, first.Outcomes) {
			t.Fatalf("iteration %d: outcomes differ", i)
		}
	}
	if first.Outcomes[0].Candidates != 2 {
		t.Errorf("Candidates = %d, want 2", first.Outcomes[0].Candidates)
	}
}

func TestApplyNoMatchHint(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "return valeu", ReplaceBlock: "x"},
	}}

	res, err := e.Apply("func f() {\n\treturn value\n}\n", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := res.Outcomes[0]
	if o.Applied() {
		t.Fatal("expected a failed hunk")
	}
	if o.SimilarLine != 2 {
		t.Errorf("SimilarLine = %d, want 2", o.SimilarLine)
	}
	if o.Similarity <= 0.5 {
		t.Errorf("Similarity = %f, want > 0.5", o.Similarity)
	}
}

func TestApplyValidationAbortsRun(t *testing.T) {
	e := NewEngine(Options{})
	p := &Patch{Hunks: []Hunk{
		{SearchBlock: "alpha", ReplaceBlock: "ALPHA"},
		{SearchBlock: "", ReplaceBlock: "x"},
	}}

	_, err := e.Apply("alpha\n", p)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}
