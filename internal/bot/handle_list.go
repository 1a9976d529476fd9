package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/config"
	"github.com/tessro/roundup/internal/store"
)

func (b *Bot) handleList(ctx context.Context, c *command.Context) error {
	entries := b.store.List()
	if len(entries) == 0 {
		slog.Info("no responses to list", "author", c.Author.Name)
		return c.SendText(ctx, b.catalog.NoneYet)
	}

	for _, card := range b.listCards(entries) {
		if err := c.Send(ctx, command.CardReply(card)); err != nil {
			return fmt.Errorf("send list card %q: %w", card.Title, err)
		}
	}
	slog.Info("all responses listed", "author", c.Author.Name, "ids", len(entries))
	return nil
}

// listCards renders entries per the configured list mode.
// entries must be non-empty.
func (b *Bot) listCards(entries []store.Entry) []*command.Card {
	now := b.now()

	if b.listMode == config.ListModeSingle {
		card := &command.Card{
			Title:     b.catalog.ListTitle,
			Color:     command.ColorBlue,
			Timestamp: now,
		}
		for _, e := range entries {
			for _, resp := range e.Record {
				card.Fields = append(card.Fields, b.responseField(b.catalog.ListFieldName, e.ID, resp))
			}
		}
		return []*command.Card{card}
	}

	cards := make([]*command.Card, 0, len(entries))
	for _, e := range entries {
		card := b.recordCard(e.ID, e.Record)
		card.Timestamp = now
		cards = append(cards, card)
	}
	return cards
}
