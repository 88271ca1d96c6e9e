package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, submit bt.SubmitFunc, transcript ...folio.Turn) bt.Model {
	t.Helper()
	return initModelWithSize(t, submit, 80, 24, transcript...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, submit bt.SubmitFunc, width, height int, transcript ...folio.Turn) bt.Model {
	t.Helper()
	m := bt.New(submit, transcript, folio.DefaultTheme(), bt.Config{ModelName: "gemini-2.0-flash"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeText sends each rune as a key press.
func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	for _, r := range text {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// echo replies with the user's text.
func echo(_ context.Context, text string) folio.Reply {
	return folio.Reply{Text: "echo: " + text, Kind: folio.ReplyOK}
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
