package ledgerobs

import (
	"context"
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

type observableLedger struct {
	ledger interfaces.Ledger
}

var _ interfaces.Ledger = (*observableLedger)(nil)

// Wrap wraps a ledger with observability middleware
func Wrap(ledger interfaces.Ledger) interfaces.Ledger {
	return &observableLedger{
		ledger: ledger,
	}
}

func (ol *observableLedger) AppendRow(ctx context.Context, rec types.TradeRecord, derived types.DerivedFields) (types.LedgerRow, error) {
	ctx, span := trace.StartSpan(ctx, "ledger.AppendRow")
	defer span.End()

	start := time.Now()
	row, err := ol.ledger.AppendRow(ctx, rec, derived)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to append journal row", err,
			"symbol", rec.Symbol,
			"date", rec.DateString(),
		)
		return row, err
	}

	logger.DebugSkip(ctx, 1, "Journal row appended",
		"trade_id", row.TradeID,
		"symbol", row.Symbol,
		"win_loss", row.WinLoss,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return row, nil
}

func (ol *observableLedger) ReadAllRowsForDate(ctx context.Context, date time.Time) ([]types.LedgerRow, error) {
	ctx, span := trace.StartSpan(ctx, "ledger.ReadAllRowsForDate")
	defer span.End()

	rows, err := ol.ledger.ReadAllRowsForDate(ctx, date)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to read journal rows", err,
			"date", date.Format(types.DateLayout),
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Journal rows read",
		"date", date.Format(types.DateLayout),
		"rows", len(rows),
	)
	return rows, nil
}

func (ol *observableLedger) Close() error {
	return ol.ledger.Close()
}
