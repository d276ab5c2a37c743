package patch

import (
	"strings"

	"github.com/kvit-s/tokpatch/internal/document"
)

// Tokenize splits a raw search or replace block into its content tokens:
// one whitespace-stripped line each. LF and CRLF are equivalent delimiters
// because the patch author's own line-ending choice carries no meaning, and
// the block's indentation is discarded for the same reason. An empty block
// yields no tokens.
func Tokenize(block string) []string {
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\n")
	tokens := make([]string, len(lines))
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		tokens[i] = document.DecomposeLine(l, document.EndNone).Content
	}
	return tokens
}
