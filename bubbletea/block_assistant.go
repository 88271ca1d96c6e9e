package bubbletea

import (
	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/goldmark"
)

var _ MessageBlock = (*AssistantMessageBlock)(nil)

// AssistantMessageBlock renders a reply as markdown under an "Assistant:"
// header. Rendering is cached per width.
type AssistantMessageBlock struct {
	text    string
	theme   folio.Theme
	styles  Styles
	byWidth map[int]string
}

// NewAssistantMessageBlock creates an AssistantMessageBlock.
func NewAssistantMessageBlock(text string, theme folio.Theme, styles Styles) *AssistantMessageBlock {
	return &AssistantMessageBlock{
		text:    text,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantMessageBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	view := b.styles.Assistant.Render("Assistant:")
	if body := goldmark.Render(b.text, width, b.theme); body != "" {
		view += "\n" + body
	}
	b.byWidth[width] = view
	return view
}
