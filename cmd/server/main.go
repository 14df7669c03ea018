// Package main is the entry point for the alter-ego binary
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/cmd/server/client"
	"github.com/KirkDiggler/alter-ego/cmd/server/play"
	"github.com/KirkDiggler/alter-ego/internal/config"
	"github.com/KirkDiggler/alter-ego/internal/pkg/logging"
)

var (
	cfg       *config.Config
	flushLogs func()
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "alter-ego",
	Short: "Alter ego travel game server and clients",
	Long: `alter-ego serves the persona, stamp and guide generators behind the
Tunisia travel game, and can play the game from a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		flushLogs, err = logging.Install(&logging.Config{
			Level:  level,
			Format: cfg.Log.Format,
			Name:   cmd.Name(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if flushLogs != nil {
			flushLogs()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
	rootCmd.AddCommand(play.NewCommand(func() *config.Config { return cfg }))
}
