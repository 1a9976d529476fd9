package cli

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/config"
	"github.com/tessro/roundup/internal/tui"
)

var (
	consoleUser  string
	consoleAdmin bool
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Try the bot in a local terminal chat",
	Long: `Open an interactive terminal chat wired to the same commands the
Discord bot serves. No token or network access is needed.

Messages are sent as --user; pass --admin to run admin-only commands.`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The console owns the terminal, so logs go to the file only.
	cleanup, err := setupLogging(cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	name := consoleUser
	if name == "" {
		name = defaultUserName()
	}

	return tui.Run(cmd.Context(), a.router, tui.Options{
		Author: command.Author{ID: "console:" + name, Name: name},
		Admin:  consoleAdmin,
	})
}

func defaultUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "you"
}

func init() {
	consoleCmd.Flags().StringVarP(&consoleUser, "user", "u", "", "display name to send messages as (default: current OS user)")
	consoleCmd.Flags().BoolVar(&consoleAdmin, "admin", false, "send messages with admin permission")
	rootCmd.AddCommand(consoleCmd)
}
