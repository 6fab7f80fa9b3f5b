package interfaces

import (
	"context"
	"time"

	"llm-trade-journal/internal/types"
)

// Ledger is the append-only trade journal.
type Ledger interface {
	// AppendRow persists a completed record and returns the stored row.
	AppendRow(ctx context.Context, rec types.TradeRecord, derived types.DerivedFields) (types.LedgerRow, error)
	// ReadAllRowsForDate returns every row whose Date column equals date's calendar day.
	ReadAllRowsForDate(ctx context.Context, date time.Time) ([]types.LedgerRow, error)
	Close() error
}
