package cli

import (
	"fmt"
	"log/slog"

	"github.com/tessro/roundup/internal/bot"
	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/config"
	"github.com/tessro/roundup/internal/messages"
	"github.com/tessro/roundup/internal/metrics"
	"github.com/tessro/roundup/internal/store"
)

// app is a fully wired bot: one store, one router, all commands registered.
type app struct {
	cfg    *config.Config
	store  *store.Store
	router *command.Router
}

// newApp builds the bot from cfg. Every front end shares this wiring.
func newApp(cfg *config.Config) (*app, error) {
	catalog, err := messages.Load(cfg.Bot.Messages)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	s := store.New()
	metrics.TrackStore(s)

	router := command.NewRouter(cfg.Bot.Prefix, catalog)
	router.Observe(metrics.ObserveCommand)
	bot.New(s, catalog, bot.WithListMode(cfg.Bot.ListMode)).Register(router)

	slog.Debug("bot wired",
		"prefix", cfg.Bot.Prefix,
		"list_mode", cfg.Bot.ListMode,
		"commands", len(router.Commands()),
	)
	return &app{cfg: cfg, store: s, router: router}, nil
}
