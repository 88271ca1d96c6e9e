package bubbletea

import "github.com/fwojciec/folio"

// MessageBlock is a renderable turn in the transcript. View takes a width so
// the model controls layout and blocks are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// blockFor returns the block that displays t.
func blockFor(t folio.Turn, theme folio.Theme, styles Styles) MessageBlock {
	switch {
	case t.Role == folio.RoleUser:
		return NewUserMessageBlock(t.Text, styles)
	case t.Warning():
		return NewErrorBlock(t.Text, styles)
	default:
		return NewAssistantMessageBlock(t.Text, theme, styles)
	}
}
