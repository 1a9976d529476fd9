package bot

import (
	"context"
	"log/slog"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/messages"
)

// handleClear is registered admin-only; the router rejects other callers
// before this runs.
func (b *Bot) handleClear(ctx context.Context, c *command.Context) error {
	vars := messages.Vars{ID: c.ID}
	if !b.store.Clear(c.ID) {
		slog.Info("responses not found", "author", c.Author.Name, "command", c.Command, "id", c.ID)
		return c.SendText(ctx, messages.Format(b.catalog.NotFound, vars))
	}

	if err := c.SendText(ctx, messages.Format(b.catalog.Cleared, vars)); err != nil {
		return err
	}
	slog.Info("responses cleared", "author", c.Author.Name, "author_id", c.Author.ID, "id", c.ID)
	return nil
}
