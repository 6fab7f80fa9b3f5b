package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveFields(t *testing.T) {
	capital := decimal.NewFromInt(100000)

	tests := []struct {
		name     string
		pnl      int64
		invested int64
		pnlPct   string
		riskPct  string
		winLoss  string
	}{
		{"win with capital", 1500, 15000, "10", "0", Win},
		{"loss with capital", -1200, 8000, "-15", "1.2", Loss},
		{"loss without capital", -500, 0, "0", "0.5", Loss},
		{"breakeven", 0, 5000, "0", "0", Breakeven},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record(tt.pnl)
			if tt.invested > 0 {
				rec.CapitalInvested = decimal.NewNullDecimal(decimal.NewFromInt(tt.invested))
			}

			d := DeriveFields(rec, capital)

			assert.Equal(t, tt.pnlPct, d.PnLPct.String())
			assert.Equal(t, tt.riskPct, d.RiskPct.String())
			assert.Equal(t, tt.winLoss, d.WinLoss)
		})
	}
}

func TestLossBuffer(t *testing.T) {
	limit := decimal.NewFromInt(-5000)

	assert.Equal(t, "3000", lossBuffer(decimal.NewFromInt(-2000), limit).String())
	assert.Equal(t, "5000", lossBuffer(decimal.Zero, limit).String())
	assert.Equal(t, "6500", lossBuffer(decimal.NewFromInt(1500), limit).String())
}
