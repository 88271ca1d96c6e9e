// Package bubbletea provides a Bubble Tea terminal chat for a folio session.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
)

// SubmitFunc sends user text and returns the reply. It blocks until the
// reply is ready or ctx is cancelled, and never returns an error: failures
// arrive as failed replies. Session.Submit is a SubmitFunc.
type SubmitFunc func(ctx context.Context, text string) folio.Reply

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ReplyMsg delivers the reply to a submission.
type ReplyMsg struct {
	Reply folio.Reply
}
