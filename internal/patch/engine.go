package patch

import "github.com/kvit-s/tokpatch/internal/document"

// Status is the terminal state of one hunk.
type Status int

const (
	StatusApplied Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusApplied {
		return "applied"
	}
	return "failed"
}

// Outcome records what happened to a single hunk. Every hunk in a run
// yields exactly one outcome.
type Outcome struct {
	Index       int
	Description string
	Status      Status
	Mode        Mode
	Span        Span // valid only when applied
	Candidates  int  // matches seen by the winning mode; >1 means first-index tie-break
	Reason      string

	// Closest-line hint for failed hunks; SimilarLine is 1-based, 0 when
	// nothing comparable was found.
	SimilarLine int
	SimilarText string
	Similarity  float64
}

// Applied reports whether the hunk was applied.
func (o Outcome) Applied() bool {
	return o.Status == StatusApplied
}

// Result is the terminal state of a run: the patched text and one outcome
// per hunk, in hunk order.
type Result struct {
	Text     string
	Outcomes []Outcome
}

// AppliedCount returns how many hunks were applied.
func (r *Result) AppliedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Applied() {
			n++
		}
	}
	return n
}

// AllApplied reports whether every hunk was applied.
func (r *Result) AllApplied() bool {
	return r.AppliedCount() == len(r.Outcomes)
}

// Options configures an Engine.
type Options struct {
	// DisableFloating turns off the floating fallback, leaving strict
	// content matching only.
	DisableFloating bool
}

// Engine applies patches. It holds no per-run state, so one Engine may be
// shared by concurrent runs against independent documents.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Apply validates the patch, then applies its hunks in order against an
// evolving document snapshot. A hunk whose search block cannot be located
// is recorded as failed and the document is left as it was before that
// hunk; the run continues, since later hunks usually target unrelated
// regions. Validation failure aborts the whole run with a
// *ValidationError and nothing applied.
func (e *Engine) Apply(text string, p *Patch) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	doc := document.Build(text)
	outcomes := make([]Outcome, 0, len(p.Hunks))

	for i, h := range p.Hunks {
		out := Outcome{Index: i, Description: h.Description}
		search := Tokenize(h.SearchBlock)

		span, mode, candidates, ok := findMatch(doc, search, !e.opts.DisableFloating)
		if !ok {
			out.Status = StatusFailed
			out.Mode = ModeNone
			out.Reason = "search block not found"
			out.SimilarLine, out.SimilarText, out.Similarity = mostSimilarLine(doc, search)
			outcomes = append(outcomes, out)
			continue
		}

		doc = applySpan(doc, span, Tokenize(h.ReplaceBlock))
		out.Status = StatusApplied
		out.Mode = mode
		out.Span = span
		out.Candidates = candidates
		outcomes = append(outcomes, out)
	}

	return &Result{Text: doc.Render(), Outcomes: outcomes}, nil
}

// ApplyPayload decodes a JSON patch payload and applies it to text.
func (e *Engine) ApplyPayload(text string, payload []byte) (*Result, error) {
	p, err := ParsePayload(payload)
	if err != nil {
		return nil, err
	}
	return e.Apply(text, p)
}
