package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/eod"
	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/types"
)

// Outcome is everything that happened to one inbound message.
type Outcome struct {
	Record   types.TradeRecord  `json:"record"`
	Decision types.RiskDecision `json:"decision"`
	Row      *types.LedgerRow   `json:"row,omitempty"`
	Recorded bool               `json:"recorded"`
}

// Journal runs the extract → evaluate → append flow for chat messages.
type Journal struct {
	extractor interfaces.Extractor
	ledger    interfaces.Ledger
	limits    types.RiskLimits
	loc       *time.Location
	now       func() time.Time
}

var _ interfaces.Journal = (*Journal)(nil)

func (j *Journal) today() time.Time {
	return j.now().In(j.loc)
}

// TodayTotal sums today's P&L from the ledger. Read failures degrade to zero
// so that evaluation can proceed.
func (j *Journal) TodayTotal(ctx context.Context) decimal.Decimal {
	rows, err := j.ledger.ReadAllRowsForDate(ctx, j.today())
	if err != nil {
		logger.Warn(ctx, "Failed to read today's journal rows, assuming zero P&L", "error", err)
		return decimal.Zero
	}
	return eod.Total(rows)
}

// Assess extracts and evaluates a message without touching the ledger.
func (j *Journal) Assess(ctx context.Context, text string) (Outcome, error) {
	rec, err := j.extractor.Extract(ctx, text, j.today())
	if err != nil {
		return Outcome{}, err
	}
	decision := Evaluate(rec, j.TodayTotal(ctx), j.limits)
	return Outcome{Record: rec, Decision: decision}, nil
}

// Process assesses a message and appends it to the ledger when allowed.
// A blocked trade is never appended. Append failures are returned with the
// assessed outcome so the caller can tell the user the trade was not recorded.
func (j *Journal) Process(ctx context.Context, text string) (Outcome, error) {
	out, err := j.Assess(ctx, text)
	if err != nil {
		return Outcome{}, err
	}

	rec := out.Record
	for _, w := range out.Decision.Warnings {
		logger.Risk(ctx, rec.Symbol, "RISK_WARNING", "warning", w, "pnl", rec.ProfitLoss.String())
	}

	if !out.Decision.Allowed {
		logger.Risk(ctx, rec.Symbol, "TRADE_BLOCKED_DAILY_LIMIT",
			"pnl", rec.ProfitLoss.String(),
			"projected_daily_total", out.Decision.ProjectedDailyTotal.String(),
			"limit", j.limits.MaxLossPerDay.String(),
		)
		return out, nil
	}

	row, err := j.ledger.AppendRow(ctx, rec, DeriveFields(rec, j.limits.TradingCapital))
	if err != nil {
		return out, fmt.Errorf("append trade to journal: %w", err)
	}
	out.Row = &row
	out.Recorded = true

	logger.Trade(ctx, rec.Symbol, string(rec.Direction), rec.ProfitLoss.String(), row.TradeID,
		"instrument", string(rec.InstrumentType),
		"projected_daily_total", out.Decision.ProjectedDailyTotal.String(),
	)
	return out, nil
}

// Start returns the welcome text.
func (j *Journal) Start(ctx context.Context) string {
	return startReply
}

// HandleMessage processes a trade message and converts every outcome,
// including failures, into reply text.
func (j *Journal) HandleMessage(ctx context.Context, text string) string {
	out, err := j.Process(ctx, text)
	switch {
	case err != nil && out.Record.RawMessage != "":
		logger.ErrorWithErr(ctx, "Trade was not recorded", err, "symbol", out.Record.Symbol)
		return appendFailedReply(err, text)
	case err != nil:
		logger.ErrorWithErr(ctx, "Failed to process trade message", err)
		return errorReply(err, text)
	case !out.Recorded:
		return blockedReply(out)
	default:
		return recordedReply(out)
	}
}

// Stats reports today's running total against the daily limit.
func (j *Journal) Stats(ctx context.Context) string {
	return statsReply(j.TodayTotal(ctx), j.limits.MaxLossPerDay)
}

// Daily reports today's trade statistics. When the journal cannot be read it
// falls back to the total alone.
func (j *Journal) Daily(ctx context.Context) string {
	today := j.today()
	rows, err := j.ledger.ReadAllRowsForDate(ctx, today)
	if err != nil {
		logger.Warn(ctx, "Daily summary failed to read journal", "error", err)
		return dailyFallbackReply(decimal.Zero)
	}
	return dailyReply(eod.Summarize(today.Format(types.DateLayout), rows), j.limits.MaxLossPerDay)
}
