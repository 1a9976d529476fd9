// Package discord connects the command router to a Discord bot account.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/logging"
)

// Intents requested at login. Message content is privileged and must be
// enabled for the application in the developer portal.
const Intents = discordgo.IntentGuilds |
	discordgo.IntentGuildMessages |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent |
	discordgo.IntentGuildMembers

// session is the subset of *discordgo.Session the transport uses.
type session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Transport runs the router against a Discord gateway session.
type Transport struct {
	token  string
	router *command.Router
}

// New creates a transport that authenticates with the given bot token.
func New(token string, router *command.Router) *Transport {
	return &Transport{token: token, router: router}
}

// Run connects to Discord and handles messages until ctx is done.
func (t *Transport) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + t.token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	discordgo.Logger = logToSlog
	dg.Identify.Intents = Intents
	dg.LogLevel = discordgo.LogWarning

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("connected to discord", "user", r.User.String(), "guilds", len(r.Guilds))
	})
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer logging.LogPanic("discord-message", nil)
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}
		t.handleMessage(ctx, s, selfID, m)
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	slog.Info("discord session open")

	<-ctx.Done()
	slog.Info("closing discord session")
	return dg.Close()
}

// handleMessage dispatches one incoming message.
func (t *Transport) handleMessage(ctx context.Context, s session, selfID string, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return
	}

	msg := command.Message{
		Content:   m.Content,
		Author:    command.Author{ID: m.Author.ID, Name: m.Author.Username},
		ChannelID: m.ChannelID,
		IsAdmin: func(ctx context.Context) (bool, error) {
			return isAdmin(ctx, s, m)
		},
		Replier: &replier{session: s, channelID: m.ChannelID},
	}
	t.router.Dispatch(ctx, msg)
}

// isAdmin reports whether the author has the Administrator permission in
// the channel. Direct messages never grant admin.
func isAdmin(ctx context.Context, s session, m *discordgo.MessageCreate) (bool, error) {
	if m.GuildID == "" {
		return false, nil
	}
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("resolve permissions: %w", err)
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

// replier sends replies to a single channel.
type replier struct {
	session   session
	channelID string
}

func (r *replier) Reply(ctx context.Context, reply command.Reply) error {
	if reply.Card == nil {
		_, err := r.session.ChannelMessageSend(r.channelID, truncate(reply.Text, maxContentLength), discordgo.WithContext(ctx))
		return err
	}
	for _, embed := range toEmbeds(reply.Card) {
		if _, err := r.session.ChannelMessageSendEmbeds(r.channelID, []*discordgo.MessageEmbed{embed}, discordgo.WithContext(ctx)); err != nil {
			return err
		}
	}
	return nil
}

// logToSlog forwards discordgo's internal log lines to slog.
func logToSlog(msgL, caller int, format string, a ...interface{}) {
	level := slog.LevelDebug
	switch msgL {
	case discordgo.LogError:
		level = slog.LevelError
	case discordgo.LogWarning:
		level = slog.LevelWarn
	case discordgo.LogInformational:
		level = slog.LevelInfo
	}
	slog.Log(context.Background(), level, fmt.Sprintf(format, a...), "source", "discordgo")
}
