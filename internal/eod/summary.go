package eod

import (
	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/types"
)

// Total sums the P&L column. This is the running daily total the risk
// evaluator consumes; it is always recomputed from rows, never cached.
func Total(rows []types.LedgerRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.PnL)
	}
	return total
}

// Summarize computes the daily statistics for rows of a single date.
func Summarize(date string, rows []types.LedgerRow) Summary {
	s := Summary{
		Date:    date,
		Total:   Total(rows),
		Trades:  len(rows),
		WinRate: decimal.Zero,
	}
	for _, r := range rows {
		switch {
		case r.PnL.IsPositive():
			s.Wins++
		case r.PnL.IsNegative():
			s.Losses++
		}
	}
	if s.Trades > 0 {
		s.WinRate = decimal.NewFromInt(int64(s.Wins)).
			Div(decimal.NewFromInt(int64(s.Trades))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return s
}
