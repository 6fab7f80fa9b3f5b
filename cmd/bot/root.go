package main

import (
	"context"

	"github.com/spf13/cobra"

	"llm-trade-journal/internal/trace"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Chat-driven trade journal with LLM extraction and risk limits",
	Long: `Journal turns free-text trade messages into structured journal rows.

Each message is extracted by an LLM, completed (P&L derived from prices when
not stated), checked against per-trade and daily loss limits, and appended to
the ledger unless the daily limit would be breached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeSystem()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = trace.Shutdown(context.Background())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "config file (missing file means defaults)")

	rootCmd.AddCommand(
		newPollCmd(),
		newWebhookCmd(),
		newExtractCmd(),
		newStatsCmd(),
		newDailyCmd(),
	)
}

// setup loads config and wires the app for a command.
func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg)
}
