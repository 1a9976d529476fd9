// Package cli implements the roundup command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/roundup/internal/paths"
)

// roundupDir is the global --roundup-dir flag value.
var roundupDir string

var rootCmd = &cobra.Command{
	Use:   "roundup",
	Short: "Chat bot for collecting responses",
	Long:  "roundup is a chat bot that collects one response per member under a shared ID and lets anyone view them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set ROUNDUP_DIR so every path helper sees the override.
		if roundupDir != "" {
			if err := os.Setenv(paths.EnvRoundupDir, roundupDir); err != nil {
				return err
			}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&roundupDir, "roundup-dir", "", "base directory for roundup data (overrides ~/.roundup)")
}

func Execute() error {
	return rootCmd.Execute()
}
