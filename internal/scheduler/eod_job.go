package scheduler

import (
	"context"
	"fmt"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
)

// EODJob writes the day's CSV report and pushes the daily summary.
type EODJob struct {
	summarizer interfaces.EodSummarizer
	journal    interfaces.Journal
	notifier   interfaces.Notifier // nil disables the push
}

func NewEODJob(summarizer interfaces.EodSummarizer, journal interfaces.Journal, notifier interfaces.Notifier) *EODJob {
	return &EODJob{summarizer: summarizer, journal: journal, notifier: notifier}
}

func (j *EODJob) Name() string { return "eod_summary" }

func (j *EODJob) Run(ctx context.Context) error {
	csvPath, err := j.summarizer.SummarizeToday(ctx)
	if err != nil {
		// The push still goes out; the CSV is a side report.
		logger.Warn(ctx, "EOD report not written", "error", err)
	} else if csvPath != "" {
		logger.Info(ctx, "EOD report written", "csv_path", csvPath)
	}

	if j.notifier == nil {
		return nil
	}
	if err := j.notifier.Notify(ctx, j.journal.Daily(ctx)); err != nil {
		return fmt.Errorf("push daily summary: %w", err)
	}
	return nil
}
