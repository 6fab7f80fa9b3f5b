package engineobs

import (
	"context"
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/trace"
)

type observableJournal struct {
	journal interfaces.Journal
}

var _ interfaces.Journal = (*observableJournal)(nil)

func Wrap(j interfaces.Journal) interfaces.Journal {
	return &observableJournal{
		journal: j,
	}
}

func (oj *observableJournal) Start(ctx context.Context) string {
	ctx, span := trace.StartSpan(ctx, "journal.Start")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Start command received")
	return oj.journal.Start(ctx)
}

func (oj *observableJournal) HandleMessage(ctx context.Context, text string) string {
	ctx, span := trace.StartSpan(ctx, "journal.HandleMessage")
	defer span.End()

	start := time.Now()
	logger.InfoSkip(ctx, 1, "Processing trade message", "length", len(text))

	reply := oj.journal.HandleMessage(ctx, text)

	logger.InfoSkip(ctx, 1, "Trade message processed",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return reply
}

func (oj *observableJournal) Stats(ctx context.Context) string {
	ctx, span := trace.StartSpan(ctx, "journal.Stats")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Stats command received")
	return oj.journal.Stats(ctx)
}

func (oj *observableJournal) Daily(ctx context.Context) string {
	ctx, span := trace.StartSpan(ctx, "journal.Daily")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Daily summary requested")
	return oj.journal.Daily(ctx)
}
