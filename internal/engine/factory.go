package engine

import (
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/types"
)

// New creates a journal. loc decides which calendar day "today" is.
func New(extractor interfaces.Extractor, ledger interfaces.Ledger, limits types.RiskLimits, loc *time.Location) *Journal {
	return &Journal{
		extractor: extractor,
		ledger:    ledger,
		limits:    limits,
		loc:       loc,
		now:       time.Now,
	}
}
