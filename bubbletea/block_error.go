package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a failed reply. The text already carries the warning
// marker and any hints, so it is shown verbatim.
type ErrorBlock struct {
	text   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(text string, styles Styles) *ErrorBlock {
	return &ErrorBlock{text: text, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Assistant.Render("Assistant:") + " " + b.styles.Error.Render(b.text)
	return lipgloss.NewStyle().Width(width).Render(content)
}
