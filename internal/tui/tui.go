// Package tui provides a Bubbletea terminal front end for trying the bot
// locally. Messages typed into the input line are dispatched through the
// same command router the Discord transport uses, as a configurable user.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/roundup/internal/command"
)

// Options configures the simulated chat user.
type Options struct {
	Author command.Author
	Admin  bool
}

// repliesMsg carries the result of dispatching one input.
type repliesMsg struct {
	replies []command.Reply
	handled bool
}

// Model is the Bubbletea model for the console front end.
type Model struct {
	ctx    context.Context
	router *command.Router
	opts   Options

	width  int
	height int
	ready  bool

	transcript Transcript
	inputLine  InputLine
}

// New creates a console model dispatching to router.
func New(ctx context.Context, router *command.Router, opts Options) Model {
	t := NewTranscript()
	prefix := router.Prefix()
	return Model{
		ctx:        ctx,
		router:     router,
		opts:       opts,
		transcript: t,
		inputLine:  NewInputLine(fmt.Sprintf("Type %shelp for commands...", prefix)),
	}
}

// Run starts the console until the user quits or ctx is done.
func Run(ctx context.Context, router *command.Router, opts Options) error {
	p := tea.NewProgram(New(ctx, router, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case repliesMsg:
		if !msg.handled {
			m.transcript.AppendSystem(fmt.Sprintf("Not a command. Try %shelp.", m.router.Prefix()))
		}
		for _, r := range msg.replies {
			m.transcript.AppendReply(r)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "alt+enter":
			m.inputLine.InsertNewline()
			m.layout()
			return m, nil
		case "up":
			if m.inputLine.HistoryUp() {
				m.layout()
				return m, nil
			}
		case "down":
			if m.inputLine.HistoryDown() {
				m.layout()
				return m, nil
			}
		case "pgup":
			m.transcript.PageUp()
			return m, nil
		case "pgdown":
			m.transcript.PageDown()
			return m, nil
		}
	}

	cmd := m.inputLine.Update(msg)
	m.layout()
	return m, cmd
}

// submit sends the current input to the router.
func (m Model) submit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.inputLine.Value())
	if content == "" {
		return m, nil
	}
	m.inputLine.AddToHistory(content)
	m.inputLine.Clear()
	m.transcript.AppendUser(m.opts.Author.Name, content)
	m.layout()
	return m, m.dispatch(content)
}

func (m Model) dispatch(content string) tea.Cmd {
	ctx, router, opts := m.ctx, m.router, m.opts
	return func() tea.Msg {
		var replies []command.Reply
		msg := command.Message{
			Content:   content,
			Author:    opts.Author,
			ChannelID: "console",
			IsAdmin: func(context.Context) (bool, error) {
				return opts.Admin, nil
			},
			Replier: command.ReplierFunc(func(_ context.Context, r command.Reply) error {
				replies = append(replies, r)
				return nil
			}),
		}
		handled := router.Dispatch(ctx, msg)
		return repliesMsg{replies: replies, handled: handled}
	}
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.inputLine.SetWidth(m.width)
	// header (1) + help (1) + input
	m.transcript.SetSize(m.width, m.height-2-m.inputLine.Height())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	role := "member"
	if m.opts.Admin {
		role = "admin"
	}
	header := headerStyle.Width(m.width).Render(fmt.Sprintf("📋 roundup console  %s (%s)", m.opts.Author.Name, role))
	help := helpStyle.Render("enter send · alt+enter newline · ↑/↓ history · pgup/pgdn scroll · esc quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.transcript.View(),
		m.inputLine.View(),
		help,
	)
}
