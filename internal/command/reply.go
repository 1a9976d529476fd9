package command

import (
	"context"
	"time"
)

// ColorBlue is the card accent color used for response listings.
const ColorBlue = 0x3498DB

// Field is one titled block within a card.
type Field struct {
	Name  string
	Value string
}

// Card is a titled, colored rich message.
type Card struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	// Timestamp is shown in the card footer when non-zero.
	Timestamp time.Time
}

// Reply is a message sent back to the channel a command came from.
// Exactly one of Text or Card is set.
type Reply struct {
	Text string
	Card *Card
}

// TextReply returns a plain-text reply.
func TextReply(text string) Reply {
	return Reply{Text: text}
}

// CardReply returns a card reply.
func CardReply(card *Card) Reply {
	return Reply{Card: card}
}

// Replier delivers replies to the originating channel.
type Replier interface {
	Reply(ctx context.Context, r Reply) error
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, r Reply) error

// Reply calls f.
func (f ReplierFunc) Reply(ctx context.Context, r Reply) error {
	return f(ctx, r)
}
