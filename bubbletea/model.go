package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

// Config holds display settings for the TUI.
type Config struct {
	// ModelName is shown in the status line.
	ModelName string
}

// Model is the Bubble Tea model for the terminal chat.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while a reply is pending. Exported for test access.
	Spinner spinner.Model

	submit     SubmitFunc
	transcript []folio.Turn
	theme      folio.Theme
	styles     Styles
	config     Config

	blocks  []MessageBlock
	running bool
	cancel  context.CancelFunc
	ready   bool
}

// New creates a Model that sends input through submit. transcript holds
// turns already in the session; they are shown when the window first sizes.
func New(submit SubmitFunc, transcript []folio.Turn, theme folio.Theme, config Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message here..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Accent

	return Model{
		Input:      ti,
		Spinner:    sp,
		submit:     submit,
		transcript: transcript,
		theme:      theme,
		styles:     styles,
		config:     config,
	}
}

// Running returns whether a reply is pending.
func (m Model) Running() bool { return m.running }

// Blocks returns the number of rendered turns.
func (m Model) Blocks() int { return len(m.blocks) }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg.Reply)
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		for _, t := range m.transcript {
			m.blocks = append(m.blocks, blockFor(t, m.theme, m.styles))
		}
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.refresh()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	if m.running {
		return m, nil
	}

	// Only non-character keys scroll, so typing 'j' or 'k' stays in the input.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.refresh()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true

	return m, tea.Batch(submitCmd(m.submit, ctx, text), m.Spinner.Tick)
}

func (m Model) handleReply(reply folio.Reply) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.running = false

	m.blocks = append(m.blocks, blockFor(reply.Turn(), m.theme, m.styles))
	m.refresh()
	return m, m.Input.Focus()
}

// refresh re-renders the transcript and scrolls to the latest turn.
func (m *Model) refresh() {
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	views := make([]string, len(m.blocks))
	for i, block := range m.blocks {
		views[i] = block.View(m.Viewport.Width)
	}
	return strings.Join(views, "\n\n")
}

func (m Model) statusLine() string {
	if m.running {
		return m.Spinner.View() + " " + m.styles.Muted.Render("Thinking...")
	}
	parts := []string{"Enter to send, Ctrl+C to quit"}
	if m.config.ModelName != "" {
		parts = append(parts, m.config.ModelName)
	}
	if n := uniseg.GraphemeClusterCount(m.Input.Value()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d chars", n))
	}
	line := strings.Join(parts, " · ")
	if w := m.Viewport.Width; w > 0 {
		line = runewidth.Truncate(line, w, "…")
	}
	return m.styles.Muted.Render(line)
}

// submitCmd calls submit off the update loop and delivers the reply.
func submitCmd(submit SubmitFunc, ctx context.Context, text string) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Reply: submit(ctx, text)}
	}
}
