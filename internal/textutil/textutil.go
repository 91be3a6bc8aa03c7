// Package textutil shortens and wraps text for logs, status lines and panels.
// Widths are terminal cells, so multibyte runes are never split.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// Truncate cuts text to at most limit cells, ending in "..." when it had to
// cut.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= limit {
		return text
	}
	if limit <= len(ellipsis) {
		return ansi.Truncate(text, limit, "")
	}
	return ansi.Truncate(text, limit, ellipsis)
}

// CompactSingleLine collapses all whitespace runs to one space, then
// truncates.
func CompactSingleLine(text string, limit int) string {
	return Truncate(strings.Join(strings.Fields(text), " "), limit)
}

// Wrap word-wraps each line of text to width cells. Existing line breaks are
// kept; a single word longer than width is left whole.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}
