// Package command routes chat messages to registered command handlers.
//
// The router parses the prefix and arguments, enforces admin-only
// commands, and wraps every handler in a single error-reporting boundary:
// a handler error or panic is logged and answered with a generic
// "please try again" reply. Nothing is retried or rolled back.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/tessro/roundup/internal/logging"
	"github.com/tessro/roundup/internal/messages"
)

// ArgSpec describes the arguments a command requires.
type ArgSpec int

const (
	// NoArgs takes no arguments; anything given is ignored.
	NoArgs ArgSpec = iota
	// IDArg requires a response ID token.
	IDArg
	// IDAndText requires a response ID token followed by free text.
	IDAndText
)

// Outcome classifies how a dispatched command ended.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeError  Outcome = "error"
	OutcomeDenied Outcome = "denied"
	OutcomeUsage  Outcome = "usage"
)

// ErrPanic wraps a value recovered from a panicking handler.
var ErrPanic = errors.New("command panicked")

// Author identifies the user who sent a message.
type Author struct {
	ID   string
	Name string
}

// Message is an incoming chat message.
type Message struct {
	Content   string
	Author    Author
	ChannelID string
	// IsAdmin reports whether the author holds administrator privilege.
	// It is only consulted for admin-only commands. Nil means never admin.
	IsAdmin func(ctx context.Context) (bool, error)
	Replier Replier
}

// Context is handed to a command handler.
type Context struct {
	Command   string
	Author    Author
	ChannelID string
	ID        string
	Text      string

	replier Replier
}

// Send delivers a reply to the originating channel.
func (c *Context) Send(ctx context.Context, r Reply) error {
	return c.replier.Reply(ctx, r)
}

// SendText delivers a plain-text reply.
func (c *Context) SendText(ctx context.Context, text string) error {
	return c.replier.Reply(ctx, TextReply(text))
}

// HandlerFunc runs a command.
type HandlerFunc func(ctx context.Context, c *Context) error

// Command is a registered chat command.
type Command struct {
	Name      string
	Usage     string // e.g. "submit <response_id> <response_text>"
	Summary   string
	AdminOnly bool
	Args      ArgSpec
	Run       HandlerFunc
}

// Observer is notified after every dispatched command.
type Observer func(command string, outcome Outcome, elapsed time.Duration)

// Router dispatches messages to commands.
type Router struct {
	prefix   string
	catalog  *messages.Catalog
	commands map[string]*Command
	observer Observer
}

// NewRouter creates a router for the given prefix. It registers a
// built-in help command.
func NewRouter(prefix string, catalog *messages.Catalog) *Router {
	if catalog == nil {
		catalog = messages.Default()
	}
	r := &Router{
		prefix:   prefix,
		catalog:  catalog,
		commands: make(map[string]*Command),
	}
	r.Register(Command{
		Name:    "help",
		Usage:   "help",
		Summary: "Show available commands",
		Run:     r.runHelp,
	})
	return r
}

// Prefix returns the command prefix.
func (r *Router) Prefix() string {
	return r.prefix
}

// Register adds or replaces a command.
func (r *Router) Register(cmd Command) {
	c := cmd
	r.commands[cmd.Name] = &c
}

// Observe sets the post-dispatch observer.
func (r *Router) Observe(o Observer) {
	r.observer = o
}

// Commands returns the registered commands sorted by name.
func (r *Router) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs the command named in msg, if any.
// It reports whether msg was a registered command.
func (r *Router) Dispatch(ctx context.Context, msg Message) bool {
	inv, ok := Parse(r.prefix, msg.Content)
	if !ok {
		return false
	}
	cmd, ok := r.commands[inv.Name]
	if !ok {
		slog.Debug("unknown command", "command", inv.Name, "author", msg.Author.Name)
		return false
	}

	start := time.Now()
	outcome := r.dispatch(ctx, cmd, inv, msg)
	if r.observer != nil {
		r.observer(cmd.Name, outcome, time.Since(start))
	}
	return true
}

func (r *Router) dispatch(ctx context.Context, cmd *Command, inv Invocation, msg Message) Outcome {
	c := &Context{
		Command:   cmd.Name,
		Author:    msg.Author,
		ChannelID: msg.ChannelID,
		replier:   msg.Replier,
	}

	// Authorization runs before argument parsing.
	if cmd.AdminOnly {
		admin, err := isAdmin(ctx, msg)
		if err != nil {
			slog.Warn("admin check failed", "command", cmd.Name, "author", msg.Author.Name, "error", err)
			admin = false
		}
		if !admin {
			slog.Warn("command denied", "command", cmd.Name, "author", msg.Author.Name, "author_id", msg.Author.ID)
			r.send(ctx, c, messages.Format(r.catalog.Denied, messages.Vars{Command: r.prefix + cmd.Name}))
			return OutcomeDenied
		}
	}

	switch cmd.Args {
	case IDArg:
		c.ID, _ = SplitID(inv.Args)
		if c.ID == "" {
			r.sendUsage(ctx, c, cmd)
			return OutcomeUsage
		}
	case IDAndText:
		c.ID, c.Text = SplitID(inv.Args)
		if c.ID == "" || c.Text == "" {
			r.sendUsage(ctx, c, cmd)
			return OutcomeUsage
		}
	}

	if err := safeRun(ctx, cmd.Run, c); err != nil {
		slog.Error("command failed",
			"command", cmd.Name,
			"author", msg.Author.Name,
			"id", c.ID,
			"error", err,
		)
		r.send(ctx, c, r.catalog.Errors.For(cmd.Name))
		return OutcomeError
	}
	return OutcomeOK
}

func (r *Router) sendUsage(ctx context.Context, c *Context, cmd *Command) {
	r.send(ctx, c, messages.Format(r.catalog.Usage, messages.Vars{Usage: r.prefix + cmd.Usage}))
}

// send delivers a router-originated reply, logging delivery failures.
func (r *Router) send(ctx context.Context, c *Context, text string) {
	if err := c.SendText(ctx, text); err != nil {
		slog.Error("failed to send reply", "command", c.Command, "error", err)
	}
}

func (r *Router) runHelp(ctx context.Context, c *Context) error {
	var b strings.Builder
	b.WriteString(r.catalog.HelpHeader)
	for _, cmd := range r.Commands() {
		fmt.Fprintf(&b, "\n`%s%s`", r.prefix, cmd.Usage)
		if cmd.Summary != "" {
			fmt.Fprintf(&b, " - %s", cmd.Summary)
		}
		if cmd.AdminOnly {
			b.WriteString(" (admin)")
		}
	}
	return c.SendText(ctx, b.String())
}

func isAdmin(ctx context.Context, msg Message) (bool, error) {
	if msg.IsAdmin == nil {
		return false, nil
	}
	return msg.IsAdmin(ctx)
}

// safeRun runs fn, converting a panic into an error.
func safeRun(ctx context.Context, fn HandlerFunc, c *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic recovered",
				"command", c.Command,
				"panic", rec,
				"stack", string(logging.Stack()),
			)
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return fn(ctx, c)
}
