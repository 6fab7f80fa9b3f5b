package interfaces

import (
	"context"
	"time"

	"llm-trade-journal/internal/types"
)

// Extractor turns a raw chat message into a completed trade record.
type Extractor interface {
	Extract(ctx context.Context, rawMessage string, today time.Time) (types.TradeRecord, error)
}
