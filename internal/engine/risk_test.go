package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"llm-trade-journal/internal/types"
)

func defaultLimits() types.RiskLimits {
	return types.RiskLimits{
		MaxLossPerTrade: decimal.NewFromInt(-2000),
		MaxLossPerDay:   decimal.NewFromInt(-5000),
		TradingCapital:  decimal.NewFromInt(100000),
		MaxRiskPct:      decimal.NewFromInt(2),
	}
}

func record(pnl int64) types.TradeRecord {
	return types.TradeRecord{
		Symbol:         "NIFTY",
		InstrumentType: types.Option,
		Direction:      types.Long,
		ProfitLoss:     decimal.NewFromInt(pnl),
	}
}

func TestEvaluateBlocksDailyBreach(t *testing.T) {
	d := Evaluate(record(-1500), decimal.NewFromInt(-4000), defaultLimits())

	assert.False(t, d.Allowed)
	assert.True(t, d.ProjectedDailyTotal.Equal(decimal.NewFromInt(-5500)))
	assert.Contains(t, d.Warnings, StopTradingWarning)
	assert.Contains(t, d.Warnings[0], "DAILY LIMIT BREACH")
	assert.Contains(t, d.Warnings[0], "₹-5500.00")
}

func TestEvaluateAllowsWithinLimit(t *testing.T) {
	d := Evaluate(record(-500), decimal.NewFromInt(-4000), defaultLimits())

	assert.True(t, d.Allowed)
	assert.True(t, d.ProjectedDailyTotal.Equal(decimal.NewFromInt(-4500)))
	assert.NotContains(t, d.Warnings, StopTradingWarning)
	assert.Empty(t, d.Warnings)
}

func TestEvaluateExactlyAtDailyLimitIsAllowed(t *testing.T) {
	d := Evaluate(record(-1000), decimal.NewFromInt(-4000), defaultLimits())

	assert.True(t, d.Allowed)
	assert.True(t, d.ProjectedDailyTotal.Equal(decimal.NewFromInt(-5000)))
}

func TestEvaluatePerTradeLossWarns(t *testing.T) {
	d := Evaluate(record(-2500), decimal.Zero, defaultLimits())

	assert.True(t, d.Allowed)
	assert.Equal(t, []string{"⚠️ Trade loss ₹-2500.00 exceeds limit ₹-2000.00"}, d.Warnings)
}

func TestEvaluateRiskPctNeedsCapital(t *testing.T) {
	rec := record(-1800)

	d := Evaluate(rec, decimal.Zero, defaultLimits())
	assert.Empty(t, d.Warnings, "no capital invested means no risk check")

	rec.CapitalInvested = decimal.NewNullDecimal(decimal.NewFromInt(20000))
	d = Evaluate(rec, decimal.Zero, defaultLimits())
	assert.Empty(t, d.Warnings, "1.8 percent of capital is under the limit")

	rec.ProfitLoss = decimal.NewFromInt(-2100)
	d = Evaluate(rec, decimal.Zero, defaultLimits())
	assert.Contains(t, d.Warnings, "⚠️ Risk 2.10% > 2% limit")
}

func TestEvaluateRiskPctWarns(t *testing.T) {
	rec := record(3000)
	rec.CapitalInvested = decimal.NewNullDecimal(decimal.NewFromInt(50000))

	d := Evaluate(rec, decimal.Zero, defaultLimits())

	assert.True(t, d.Allowed)
	assert.Equal(t, []string{"⚠️ Risk 3.00% > 2% limit"}, d.Warnings)
}

func TestEvaluateEmotion(t *testing.T) {
	tests := []struct {
		emotion string
		warn    bool
	}{
		{"FOMO", true},
		{"revenge", true},
		{"Greed", true},
		{"Calm", false},
		{"Disciplined", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.emotion, func(t *testing.T) {
			rec := record(100)
			rec.Emotion = tt.emotion

			d := Evaluate(rec, decimal.Zero, defaultLimits())
			if tt.warn {
				assert.Equal(t, []string{"⚠️ Emotional trade: " + tt.emotion}, d.Warnings)
			} else {
				assert.Empty(t, d.Warnings)
			}
		})
	}
}

func TestEvaluateWarningOrder(t *testing.T) {
	rec := record(-3000)
	rec.CapitalInvested = decimal.NewNullDecimal(decimal.NewFromInt(10000))
	rec.Emotion = "Revenge"

	d := Evaluate(rec, decimal.NewFromInt(-2500), defaultLimits())

	assert.False(t, d.Allowed)
	assert.Len(t, d.Warnings, 5)
	assert.Contains(t, d.Warnings[0], "Trade loss")
	assert.Contains(t, d.Warnings[1], "DAILY LIMIT BREACH")
	assert.Equal(t, StopTradingWarning, d.Warnings[2])
	assert.Contains(t, d.Warnings[3], "Risk 3.00%")
	assert.Contains(t, d.Warnings[4], "Emotional trade")
}
