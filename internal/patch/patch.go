// Package patch locates search blocks inside a document by line content and
// replaces them, re-deriving indentation and line endings from the matched
// original lines. Matching is content-based: line numbers play no role, and
// the indentation of the patch text itself is never trusted.
package patch

import (
	"encoding/json"
	"fmt"
)

// Hunk is one requested edit: find SearchBlock, replace it with
// ReplaceBlock. Description is free text used only for reporting.
type Hunk struct {
	Description  string `json:"description"`
	SearchBlock  string `json:"search_block"`
	ReplaceBlock string `json:"replace_block"`
}

// Patch is an ordered list of hunks. Order is application order: later
// hunks see the document as modified by earlier ones.
type Patch struct {
	Hunks []Hunk `json:"hunks"`
}

// ValidationError reports a structurally malformed patch payload. It is
// fatal to the whole run: no hunk is applied when validation fails.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid patch: " + e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the patch as a whole before any matching is attempted.
// A search block must contain at least one content line; a replace block
// may be empty, which denotes pure deletion.
func (p *Patch) Validate() error {
	for i, h := range p.Hunks {
		if h.SearchBlock == "" {
			return validationErrorf("hunk %d: search_block is empty", i+1)
		}
	}
	return nil
}

// ParsePayload decodes and validates a JSON patch payload of the shape
//
//	{"hunks": [{"description": "...", "search_block": "...", "replace_block": "..."}]}
//
// Unknown extra fields are ignored. A missing hunks field, a hunk missing
// search_block or replace_block, or a wrong field type is a
// *ValidationError, reported before any matching runs.
func ParsePayload(data []byte) (*Patch, error) {
	var payload struct {
		Hunks *[]struct {
			Description  *string `json:"description"`
			SearchBlock  *string `json:"search_block"`
			ReplaceBlock *string `json:"replace_block"`
		} `json:"hunks"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, validationErrorf("malformed JSON: %v", err)
	}
	if payload.Hunks == nil {
		return nil, validationErrorf("missing required field \"hunks\"")
	}

	p := &Patch{Hunks: make([]Hunk, 0, len(*payload.Hunks))}
	for i, h := range *payload.Hunks {
		if h.SearchBlock == nil {
			return nil, validationErrorf("hunk %d: missing required field \"search_block\"", i+1)
		}
		if h.ReplaceBlock == nil {
			return nil, validationErrorf("hunk %d: missing required field \"replace_block\"", i+1)
		}
		hunk := Hunk{SearchBlock: *h.SearchBlock, ReplaceBlock: *h.ReplaceBlock}
		if h.Description != nil {
			hunk.Description = *h.Description
		}
		p.Hunks = append(p.Hunks, hunk)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
