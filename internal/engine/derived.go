package engine

import (
	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/types"
)

const (
	Win       = "Win"
	Loss      = "Loss"
	Breakeven = "Breakeven"
)

// DeriveFields computes the presentation columns of a ledger row. They are
// recomputed for every append and never stored on the record.
func DeriveFields(rec types.TradeRecord, tradingCapital decimal.Decimal) types.DerivedFields {
	pnl := rec.ProfitLoss
	derived := types.DerivedFields{
		PnLPct:  decimal.Zero,
		RiskPct: decimal.Zero,
		WinLoss: Breakeven,
	}

	if rec.CapitalInvested.Valid && rec.CapitalInvested.Decimal.IsPositive() {
		derived.PnLPct = pnl.Div(rec.CapitalInvested.Decimal).Mul(hundred).Round(2)
	}
	if pnl.IsNegative() && tradingCapital.IsPositive() {
		derived.RiskPct = pnl.Div(tradingCapital).Mul(hundred).Abs().Round(2)
	}

	switch {
	case pnl.IsPositive():
		derived.WinLoss = Win
	case pnl.IsNegative():
		derived.WinLoss = Loss
	}
	return derived
}
