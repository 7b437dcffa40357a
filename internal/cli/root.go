// Package cli implements the gamesbot command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var flags struct {
	token         string
	httpAddr      string
	blunderChance int
	logLevel      string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamesbot",
		Short: "Discord bot for playing games in guild channels",
		Long: `gamesbot is a Discord bot that hosts turn-based games in guild channels.

Players start games with slash commands and play via reactions or message
buttons. Configuration comes from GAMESBOT_* environment variables; flags
override the environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&flags.token, "token", "", "Bot token (env: GAMESBOT_TOKEN)")
	rootCmd.Flags().StringVar(&flags.httpAddr, "http-addr", "", "Status API listen address (env: GAMESBOT_HTTP_ADDR)")
	rootCmd.Flags().IntVar(&flags.blunderChance, "blunder-chance", -1, "CPU blunders 1 in N moves, 0 to disable (env: GAMESBOT_BLUNDER_CHANCE)")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (env: GAMESBOT_LOG_LEVEL)")

	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
