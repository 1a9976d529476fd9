package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/tessro/roundup/internal/command"
)

// maxEntries caps the transcript to prevent unbounded growth.
const maxEntries = 500

type entryKind int

const (
	entryUser entryKind = iota
	entryBot
	entrySystem
)

type entry struct {
	kind   entryKind
	author string
	text   string
	reply  command.Reply
}

// Transcript displays the conversation between the user and the bot.
type Transcript struct {
	entries  []entry
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// NewTranscript creates an empty transcript.
func NewTranscript() Transcript {
	return Transcript{}
}

// SetSize updates the component dimensions.
func (t *Transcript) SetSize(width, height int) {
	t.width = width
	t.height = height
	if height < 1 {
		height = 1
	}

	if !t.ready {
		t.viewport = viewport.New(width, height)
		t.ready = true
	} else {
		t.viewport.Width = width
		t.viewport.Height = height
	}
	t.updateContent()
}

// AppendUser records a message typed by the user.
func (t *Transcript) AppendUser(author, text string) {
	t.append(entry{kind: entryUser, author: author, text: text})
}

// AppendReply records a bot reply.
func (t *Transcript) AppendReply(r command.Reply) {
	t.append(entry{kind: entryBot, reply: r})
}

// AppendSystem records a local notice.
func (t *Transcript) AppendSystem(text string) {
	t.append(entry{kind: entrySystem, text: text})
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

func (t *Transcript) append(e entry) {
	t.entries = append(t.entries, e)
	if len(t.entries) > maxEntries {
		t.entries = t.entries[len(t.entries)-maxEntries:]
	}
	t.updateContent()
	t.viewport.GotoBottom()
}

// PageUp scrolls up by one page.
func (t *Transcript) PageUp() {
	t.viewport.ViewUp()
}

// PageDown scrolls down by one page.
func (t *Transcript) PageDown() {
	t.viewport.ViewDown()
}

// View renders the transcript.
func (t Transcript) View() string {
	if !t.ready {
		return ""
	}
	return t.viewport.View()
}

// Content renders every entry, independent of scroll position.
func (t Transcript) Content() string {
	parts := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		parts = append(parts, t.renderEntry(e))
	}
	return strings.Join(parts, "\n\n")
}

func (t *Transcript) updateContent() {
	if !t.ready {
		return
	}
	t.viewport.SetContent(t.Content())
}

func (t Transcript) renderEntry(e entry) string {
	width := t.width
	if width <= 0 {
		width = 80
	}
	switch e.kind {
	case entryUser:
		return userNameStyle.Render(e.author+":") + " " + wrap(e.text, width-len(e.author)-2)
	case entryBot:
		return botNameStyle.Render("roundup:") + "\n" + renderReply(e.reply, width)
	default:
		return systemStyle.Render(wrap(e.text, width))
	}
}
