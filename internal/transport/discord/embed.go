package discord

import (
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/tessro/roundup/internal/command"
)

// Discord message limits.
const (
	maxContentLength    = 2000
	maxTitleLength      = 256
	maxDescLength       = 4096
	maxFieldNameLength  = 256
	maxFieldValueLength = 1024
	maxFieldsPerEmbed   = 25
	// maxEmbedChars bounds the combined text of one embed.
	maxEmbedChars = 6000
)

const continuedSuffix = " (cont.)"

// toEmbeds converts a card into one or more embeds, splitting fields
// across embeds so each stays within Discord's limits.
func toEmbeds(card *command.Card) []*discordgo.MessageEmbed {
	var timestamp string
	if !card.Timestamp.IsZero() {
		timestamp = card.Timestamp.Format(time.RFC3339)
	}

	newEmbed := func(title string) *discordgo.MessageEmbed {
		return &discordgo.MessageEmbed{
			Title:     truncate(title, maxTitleLength),
			Color:     card.Color,
			Timestamp: timestamp,
		}
	}

	first := newEmbed(card.Title)
	first.Description = truncate(card.Description, maxDescLength)
	embeds := []*discordgo.MessageEmbed{first}
	cur := first
	size := utf8.RuneCountInString(cur.Title) + utf8.RuneCountInString(cur.Description)

	for _, f := range card.Fields {
		field := &discordgo.MessageEmbedField{
			Name:  truncate(f.Name, maxFieldNameLength),
			Value: truncate(f.Value, maxFieldValueLength),
		}
		fieldSize := utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)

		if len(cur.Fields) == maxFieldsPerEmbed || (len(cur.Fields) > 0 && size+fieldSize > maxEmbedChars) {
			cur = newEmbed(truncate(card.Title, maxTitleLength-len(continuedSuffix)) + continuedSuffix)
			embeds = append(embeds, cur)
			size = utf8.RuneCountInString(cur.Title)
		}
		cur.Fields = append(cur.Fields, field)
		size += fieldSize
	}
	return embeds
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
