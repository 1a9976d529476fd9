// Package bot implements the response-collection commands.
//
// A Bot owns a response store and registers submit, view, list, and clear
// on a command router. Handlers read or write the store and format a reply;
// failures are returned to the router, which logs them and tells the user
// to try again.
package bot

import (
	"time"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/config"
	"github.com/tessro/roundup/internal/messages"
	"github.com/tessro/roundup/internal/store"
)

// TimeFormat is how submission times are shown.
const TimeFormat = "2006-01-02 15:04:05"

// Bot handles response commands.
type Bot struct {
	store    *store.Store
	catalog  *messages.Catalog
	listMode string
	now      func() time.Time
}

// Option configures a Bot.
type Option func(*Bot)

// WithListMode selects config.ListModePerID or config.ListModeSingle.
func WithListMode(mode string) Option {
	return func(b *Bot) {
		b.listMode = mode
	}
}

// WithClock overrides the clock used for list card timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		b.now = now
	}
}

// New creates a Bot over s.
func New(s *store.Store, catalog *messages.Catalog, opts ...Option) *Bot {
	if catalog == nil {
		catalog = messages.Default()
	}
	b := &Bot{
		store:    s,
		catalog:  catalog,
		listMode: config.ListModePerID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds the response commands to r.
func (b *Bot) Register(r *command.Router) {
	r.Register(command.Command{
		Name:    "submit",
		Usage:   "submit <response_id> <response_text>",
		Summary: "Submit a response for a specific ID",
		Args:    command.IDAndText,
		Run:     b.handleSubmit,
	})
	r.Register(command.Command{
		Name:    "view",
		Usage:   "view <response_id>",
		Summary: "View all responses for a specific ID",
		Args:    command.IDArg,
		Run:     b.handleView,
	})
	r.Register(command.Command{
		Name:    "list",
		Usage:   "list",
		Summary: "List all response IDs and their contents",
		Args:    command.NoArgs,
		Run:     b.handleList,
	})
	r.Register(command.Command{
		Name:      "clear",
		Usage:     "clear <response_id>",
		Summary:   "Clear responses for a specific ID",
		AdminOnly: true,
		Args:      command.IDArg,
		Run:       b.handleClear,
	})
}

// recordCard renders the responses for one ID.
func (b *Bot) recordCard(id string, rec store.Record) *command.Card {
	card := &command.Card{
		Title: messages.Format(b.catalog.CardTitle, messages.Vars{ID: id}),
		Color: command.ColorBlue,
	}
	if len(rec) == 0 {
		card.Description = b.catalog.EmptyRecord
		return card
	}
	for _, resp := range rec {
		card.Fields = append(card.Fields, b.responseField(b.catalog.FieldName, id, resp))
	}
	return card
}

func (b *Bot) responseField(nameTmpl, id string, resp store.Response) command.Field {
	vars := messages.Vars{
		ID:     id,
		Author: resp.Author,
		Text:   resp.Text,
		Time:   resp.SubmittedAt.Format(TimeFormat),
	}
	return command.Field{
		Name:  messages.Format(nameTmpl, vars),
		Value: messages.Format(b.catalog.FieldValue, vars),
	}
}
