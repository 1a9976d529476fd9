package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/roundup/internal/messages"
)

type recorder struct {
	replies []Reply
	err     error
}

func (r *recorder) Reply(_ context.Context, reply Reply) error {
	r.replies = append(r.replies, reply)
	return r.err
}

func (r *recorder) texts() []string {
	var out []string
	for _, reply := range r.replies {
		out = append(out, reply.Text)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		content string
		want    Invocation
		wantOK  bool
	}{
		{"simple", "!", "!list", Invocation{Name: "list"}, true},
		{"with args", "!", "!view sprint1", Invocation{Name: "view", Args: "sprint1"}, true},
		{"args trimmed", "!", "!view   sprint1  ", Invocation{Name: "view", Args: "sprint1"}, true},
		{"multi-char prefix", "rb.", "rb.list", Invocation{Name: "list"}, true},
		{"newline after name", "!", "!submit\nid text", Invocation{Name: "submit", Args: "id text"}, true},
		{"no prefix", "!", "list", Invocation{}, false},
		{"prefix only", "!", "!", Invocation{}, false},
		{"space after prefix", "!", "! list", Invocation{}, false},
		{"empty prefix", "", "list", Invocation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.prefix, tt.content)
			if ok != tt.wantOK {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplitID(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		wantID   string
		wantText string
	}{
		{"empty", "", "", ""},
		{"id only", "sprint1", "sprint1", ""},
		{"id and text", "sprint1 done", "sprint1", "done"},
		{"text keeps spacing", "sprint1 done  and\n  dusted", "sprint1", "done  and\n  dusted"},
		{"quoted id", `"sprint 1" all good`, "sprint 1", "all good"},
		{"unterminated quote", `"sprint 1 all good`, `"sprint`, "1 all good"},
		{"empty quoted id", `"" text`, "", "text"},
		{"leading space", "  id text", "id", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, text := SplitID(tt.args)
			if id != tt.wantID || text != tt.wantText {
				t.Errorf("SplitID(%q) = (%q, %q), want (%q, %q)", tt.args, id, text, tt.wantID, tt.wantText)
			}
		})
	}
}

func newTestRouter() *Router {
	return NewRouter("!", messages.Default())
}

func msg(content string, rec *recorder) Message {
	return Message{
		Content:   content,
		Author:    Author{ID: "u1", Name: "alice"},
		ChannelID: "c1",
		Replier:   rec,
	}
}

func TestRouter_DispatchRunsCommand(t *testing.T) {
	r := newTestRouter()
	var got *Context
	r.Register(Command{
		Name: "submit",
		Args: IDAndText,
		Run: func(_ context.Context, c *Context) error {
			got = c
			return nil
		},
	})

	rec := &recorder{}
	if !r.Dispatch(context.Background(), msg("!submit sprint1 all done", rec)) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got == nil {
		t.Fatal("handler not called")
	}
	if got.ID != "sprint1" || got.Text != "all done" {
		t.Errorf("ID, Text = %q, %q", got.ID, got.Text)
	}
	if got.Author.Name != "alice" || got.ChannelID != "c1" {
		t.Errorf("context = %+v", got)
	}
}

func TestRouter_IgnoresNonCommands(t *testing.T) {
	r := newTestRouter()
	rec := &recorder{}

	if r.Dispatch(context.Background(), msg("hello there", rec)) {
		t.Error("Dispatch(plain text) = true")
	}
	if r.Dispatch(context.Background(), msg("!unknown thing", rec)) {
		t.Error("Dispatch(unknown command) = true")
	}
	if len(rec.replies) != 0 {
		t.Errorf("got %d replies, want 0", len(rec.replies))
	}
}

func TestRouter_MissingArgsSendsUsage(t *testing.T) {
	tests := []struct {
		name    string
		spec    ArgSpec
		content string
	}{
		{"id missing", IDArg, "!cmd"},
		{"text missing", IDAndText, "!cmd sprint1"},
		{"both missing", IDAndText, "!cmd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			called := false
			r.Register(Command{
				Name:  "cmd",
				Usage: "cmd <response_id>",
				Args:  tt.spec,
				Run: func(context.Context, *Context) error {
					called = true
					return nil
				},
			})

			var outcome Outcome
			r.Observe(func(_ string, o Outcome, _ time.Duration) { outcome = o })

			rec := &recorder{}
			r.Dispatch(context.Background(), msg(tt.content, rec))

			if called {
				t.Error("handler called with missing args")
			}
			if outcome != OutcomeUsage {
				t.Errorf("outcome = %q, want %q", outcome, OutcomeUsage)
			}
			if len(rec.replies) != 1 || !strings.Contains(rec.replies[0].Text, "!cmd <response_id>") {
				t.Errorf("replies = %v, want usage", rec.texts())
			}
		})
	}
}

func TestRouter_AdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    func(context.Context) (bool, error)
		wantCalled bool
		wantOut    Outcome
	}{
		{"nil check denies", nil, false, OutcomeDenied},
		{"non-admin denied", func(context.Context) (bool, error) { return false, nil }, false, OutcomeDenied},
		{"check error denies", func(context.Context) (bool, error) { return true, errors.New("boom") }, false, OutcomeDenied},
		{"admin allowed", func(context.Context) (bool, error) { return true, nil }, true, OutcomeOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			called := false
			r.Register(Command{
				Name:      "clear",
				AdminOnly: true,
				Args:      IDArg,
				Run: func(context.Context, *Context) error {
					called = true
					return nil
				},
			})
			var outcome Outcome
			r.Observe(func(_ string, o Outcome, _ time.Duration) { outcome = o })

			rec := &recorder{}
			m := msg("!clear sprint1", rec)
			m.IsAdmin = tt.isAdmin
			r.Dispatch(context.Background(), m)

			if called != tt.wantCalled {
				t.Errorf("called = %v, want %v", called, tt.wantCalled)
			}
			if outcome != tt.wantOut {
				t.Errorf("outcome = %q, want %q", outcome, tt.wantOut)
			}
		})
	}
}

func TestRouter_AdminCheckBeforeArgs(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{
		Name:      "clear",
		Usage:     "clear <response_id>",
		AdminOnly: true,
		Args:      IDArg,
		Run:       func(context.Context, *Context) error { return nil },
	})

	rec := &recorder{}
	r.Dispatch(context.Background(), msg("!clear", rec))

	if len(rec.replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(rec.replies))
	}
	if !strings.Contains(rec.replies[0].Text, "permission") {
		t.Errorf("reply = %q, want access denied", rec.replies[0].Text)
	}
}

func TestRouter_HandlerErrorSendsGenericReply(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{
		Name: "view",
		Args: IDArg,
		Run: func(context.Context, *Context) error {
			return errors.New("send failed")
		},
	})
	var outcome Outcome
	r.Observe(func(_ string, o Outcome, _ time.Duration) { outcome = o })

	rec := &recorder{}
	r.Dispatch(context.Background(), msg("!view sprint1", rec))

	want := messages.Default().Errors.View
	if len(rec.replies) != 1 || rec.replies[0].Text != want {
		t.Errorf("replies = %v, want [%q]", rec.texts(), want)
	}
	if outcome != OutcomeError {
		t.Errorf("outcome = %q, want %q", outcome, OutcomeError)
	}
}

func TestRouter_HandlerPanicRecovered(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{
		Name: "list",
		Run: func(context.Context, *Context) error {
			panic("nil map")
		},
	})

	rec := &recorder{}
	r.Dispatch(context.Background(), msg("!list", rec))

	want := messages.Default().Errors.List
	if len(rec.replies) != 1 || rec.replies[0].Text != want {
		t.Errorf("replies = %v, want [%q]", rec.texts(), want)
	}
}

func TestSafeRun_WrapsPanic(t *testing.T) {
	err := safeRun(context.Background(), func(context.Context, *Context) error {
		panic("boom")
	}, &Context{Command: "x"})
	if !errors.Is(err, ErrPanic) {
		t.Errorf("err = %v, want ErrPanic", err)
	}
}

func TestRouter_ReplyFailureDoesNotPanic(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{
		Name: "view",
		Args: IDArg,
		Run:  func(context.Context, *Context) error { return errors.New("x") },
	})

	rec := &recorder{err: errors.New("network down")}
	if !r.Dispatch(context.Background(), msg("!view a", rec)) {
		t.Error("Dispatch() = false")
	}
}

func TestRouter_Help(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{Name: "view", Usage: "view <response_id>", Summary: "View responses", Args: IDArg, Run: func(context.Context, *Context) error { return nil }})
	r.Register(Command{Name: "clear", Usage: "clear <response_id>", AdminOnly: true, Args: IDArg, Run: func(context.Context, *Context) error { return nil }})

	rec := &recorder{}
	r.Dispatch(context.Background(), msg("!help", rec))

	if len(rec.replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(rec.replies))
	}
	text := rec.replies[0].Text
	for _, want := range []string{"!view <response_id>", "View responses", "!clear <response_id>", "(admin)", "!help"} {
		if !strings.Contains(text, want) {
			t.Errorf("help missing %q:\n%s", want, text)
		}
	}
}

func TestRouter_Commands_Sorted(t *testing.T) {
	r := newTestRouter()
	r.Register(Command{Name: "view"})
	r.Register(Command{Name: "clear"})

	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "clear,help,view" {
		t.Errorf("Commands() = %v", names)
	}
}
