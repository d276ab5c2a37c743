// Package schema holds the canonical patch payload schema shown to users.
package schema

import "github.com/atotto/clipboard"

// Text is the reference shape of a patch payload, suitable for pasting
// into whatever produces patches.
const Text = `{
  "hunks": [
    {
      "description": "Short human description",
      "search_block": "exact text to find\n(can span multiple lines)",
      "replace_block": "replacement text\n(same or different length)"
    }
  ]
}`

// CopyToClipboard places the schema on the system clipboard.
func CopyToClipboard() error {
	return clipboard.WriteAll(Text)
}
