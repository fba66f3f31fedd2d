package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	outputFormat string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "finance",
	Short: "Finance Tracker command-line client",
	Long: `Sign in to the Finance Tracker API and work with transactions, budgets,
recurring payments, receipts and reports from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case outputTable, outputJSON, outputYAML:
		default:
			return fmt.Errorf("unknown output format %q (want table, json or yaml)", outputFormat)
		}

		level := zerolog.WarnLevel
		if debug {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

// Execute runs the command line; ctx is cancelled on interrupt
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and session changes")
}
