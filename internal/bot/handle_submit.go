package bot

import (
	"context"
	"log/slog"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/messages"
)

func (b *Bot) handleSubmit(ctx context.Context, c *command.Context) error {
	b.store.Submit(c.ID, c.Author.ID, c.Author.Name, c.Text)

	if err := c.SendText(ctx, messages.Format(b.catalog.Submitted, messages.Vars{ID: c.ID})); err != nil {
		return err
	}
	slog.Info("response submitted", "author", c.Author.Name, "author_id", c.Author.ID, "id", c.ID)
	return nil
}
