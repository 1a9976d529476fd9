package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/roundup/internal/config"
	"github.com/tessro/roundup/internal/logging"
	"github.com/tessro/roundup/internal/metrics"
	"github.com/tessro/roundup/internal/transport/discord"
	"github.com/tessro/roundup/internal/version"
)

var runStderr bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	Long: `Connect to Discord with the token from the configured environment
variable (DISCORD_TOKEN by default) and answer commands until interrupted.

Responses live in memory and are lost when the bot stops.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Check the token before anything touches the network or log file.
	token, err := cfg.Token()
	if err != nil {
		return err
	}

	var extra io.Writer
	if runStderr {
		extra = os.Stderr
	}
	cleanup, err := setupLogging(cfg, extra)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			defer logging.LogPanic("metrics-server", nil)
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				slog.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "📋 roundup listening for %shelp (Ctrl+C to stop)\n", cfg.Bot.Prefix)
	slog.Info("starting bot", "version", version.Version, "prefix", cfg.Bot.Prefix, "metrics_addr", cfg.Metrics.Addr)

	if err := discord.New(token, a.router).Run(ctx); err != nil {
		return fmt.Errorf("discord: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "📋 roundup stopped")
	return nil
}

// setupLogging installs the JSON file logger, teeing to extra when set.
func setupLogging(cfg *config.Config, extra io.Writer) (func(), error) {
	cleanup, err := logging.Setup(cfg.Log.Path, extra, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return cleanup, nil
}

func init() {
	runCmd.Flags().BoolVar(&runStderr, "stderr", false, "also write logs to stderr")
	rootCmd.AddCommand(runCmd)
}
