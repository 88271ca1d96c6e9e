// Package goldmark renders assistant replies, written in markdown, as
// ANSI-styled terminal text. Parsing uses goldmark; styling uses lipgloss.
package goldmark

import (
	"strings"

	"github.com/fwojciec/folio"
)

// DefaultWidth is used when Render is called with a non-positive width.
const DefaultWidth = 80

// Render parses markdown source and returns styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines as written. Raw HTML is dropped.
func Render(source string, width int, theme folio.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return newTerminalRenderer(theme).render([]byte(source), width)
}
