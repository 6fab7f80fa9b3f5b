package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/scheduler"
	"llm-trade-journal/internal/server"
	"llm-trade-journal/internal/transport/telegram"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTelegramBot(a *app) (*telegram.Bot, error) {
	if a.cfg.Secrets.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN missing")
	}
	return telegram.New(telegram.Params{
		Token:          a.cfg.Secrets.TelegramToken,
		MessageTimeout: a.cfg.Telegram.MessageTimeout,
		SummaryChatID:  a.cfg.Telegram.SummaryChatID,
	}, a.journal)
}

// startScheduler registers the end-of-day job when enabled. The returned
// stop func is always safe to call.
func startScheduler(ctx context.Context, a *app, notifier interfaces.Notifier) (func(), error) {
	if !a.cfg.EOD.Enabled {
		return func() {}, nil
	}
	s := scheduler.New(a.cfg.Location())
	if err := s.AddJob(ctx, a.cfg.EOD.Schedule, scheduler.NewEODJob(a.eod, a.journal, notifier)); err != nil {
		return nil, fmt.Errorf("invalid eod.schedule %q: %w", a.cfg.EOD.Schedule, err)
	}
	s.Start(ctx)
	return func() { s.Stop(context.Background()) }, nil
}

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run the Telegram bot with long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			bot, err := newTelegramBot(a)
			if err != nil {
				return err
			}

			stop, err := startScheduler(ctx, a, bot)
			if err != nil {
				return err
			}
			defer stop()

			logger.Info(ctx, "🤖 Trade journal bot started", "mode", "polling")
			return bot.Poll(ctx)
		},
	}
}

func newWebhookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "webhook",
		Short: "Serve the Telegram webhook, health checks and the JSON message API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			cfg := a.cfg
			srvCfg := server.Config{
				Port:          cfg.Server.Port,
				WebhookPath:   cfg.Server.WebhookPath,
				WebhookSecret: cfg.Server.WebhookSecret,
				Journal:       a.journal,
			}

			var notifier interfaces.Notifier
			if cfg.Secrets.TelegramToken != "" {
				bot, err := newTelegramBot(a)
				if err != nil {
					return err
				}
				url := strings.TrimRight(cfg.Server.PublicURL, "/") + cfg.Server.WebhookPath
				if err := bot.RegisterWebhook(ctx, url, cfg.Server.WebhookSecret); err != nil {
					return err
				}
				srvCfg.Updates = bot
				notifier = bot
			} else {
				logger.Warn(ctx, "TELEGRAM_BOT_TOKEN not set - serving the JSON API only")
			}

			stop, err := startScheduler(ctx, a, notifier)
			if err != nil {
				return err
			}
			defer stop()

			srv := server.New(srvCfg)
			errc := make(chan error, 1)
			go func() { errc <- srv.Start(ctx) }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <message>",
		Short: "Extract and risk-check a message without recording it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			out, err := a.core.Assess(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(out)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print today's P&L against the daily limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			fmt.Fprintln(cmd.OutOrStdout(), a.journal.Stats(ctx))
			return nil
		},
	}
}

func newDailyCmd() *cobra.Command {
	var writeReport bool
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print today's summary, optionally writing the EOD CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if writeReport {
				// No notifier: the summary goes to stdout below instead of a chat.
				job := scheduler.NewEODJob(a.eod, a.journal, nil)
				if err := scheduler.New(a.cfg.Location()).RunNow(ctx, job); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.journal.Daily(ctx))
			return nil
		},
	}
	cmd.Flags().BoolVar(&writeReport, "report", false, "also write logs/eod/<date>.csv")
	return cmd
}
