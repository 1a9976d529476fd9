package bot

import (
	"context"
	"log/slog"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/messages"
)

func (b *Bot) handleView(ctx context.Context, c *command.Context) error {
	rec, ok := b.store.View(c.ID)
	if !ok {
		slog.Info("responses not found", "author", c.Author.Name, "command", c.Command, "id", c.ID)
		return c.SendText(ctx, messages.Format(b.catalog.NotFound, messages.Vars{ID: c.ID}))
	}

	if err := c.Send(ctx, command.CardReply(b.recordCard(c.ID, rec))); err != nil {
		return err
	}
	slog.Info("responses viewed", "author", c.Author.Name, "id", c.ID, "count", len(rec))
	return nil
}
