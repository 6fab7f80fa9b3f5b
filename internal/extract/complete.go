package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/types"
)

// Complete fills defaults and derives missing P&L. It never fails.
//
// P&L is derived only when the extracted figure is null or exactly zero:
// with buy price, sell price and quantity all present it is
// (sell-buy)*qty for Long and Unknown direction and (buy-sell)*qty for Short,
// rounded to 2 places; otherwise it is 0.
func Complete(parsed Extraction, rawMessage string, today time.Time) types.TradeRecord {
	rec := types.TradeRecord{
		Date:           completeDate(parsed.Date.String(), today),
		Symbol:         completeSymbol(parsed.Symbol.String()),
		InstrumentType: types.ParseInstrumentType(parsed.InstrumentType.String()),
		Direction:      types.ParseDirection(parsed.Direction.String()),
		Strategy:       parsed.Strategy.String(),
		Emotion:        parsed.Emotion.String(),
		Notes:          parsed.Notes.String(),
		RawMessage:     rawMessage,
	}

	if parsed.BuyPrice.positive() {
		rec.BuyPrice = parsed.BuyPrice.NullDecimal
	}
	if parsed.SellPrice.positive() {
		rec.SellPrice = parsed.SellPrice.NullDecimal
	}
	if parsed.Quantity.positive() {
		q := parsed.Quantity.Decimal.Round(0).IntPart()
		if q > 0 {
			rec.Quantity = &q
		}
	}
	if parsed.CapitalInvested.Valid && !parsed.CapitalInvested.Decimal.IsNegative() {
		rec.CapitalInvested = parsed.CapitalInvested.NullDecimal
	}

	rec.ProfitLoss = completeProfitLoss(parsed.ProfitLoss, rec)
	return rec
}

func completeProfitLoss(stated looseDecimal, rec types.TradeRecord) decimal.Decimal {
	if stated.Valid && !stated.Decimal.IsZero() {
		return stated.Decimal
	}
	if !rec.BuyPrice.Valid || !rec.SellPrice.Valid || rec.Quantity == nil {
		return decimal.Zero
	}

	qty := decimal.NewFromInt(*rec.Quantity)
	buy, sell := rec.BuyPrice.Decimal, rec.SellPrice.Decimal
	if rec.Direction == types.Short {
		return buy.Sub(sell).Mul(qty).Round(2)
	}
	return sell.Sub(buy).Mul(qty).Round(2)
}

func completeDate(s string, today time.Time) time.Time {
	if s != "" {
		if d, err := time.ParseInLocation(types.DateLayout, s, today.Location()); err == nil {
			return d
		}
	}
	y, m, day := today.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, today.Location())
}

func completeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NULL" || s == "NONE" {
		return types.UnknownSymbol
	}
	return s
}
