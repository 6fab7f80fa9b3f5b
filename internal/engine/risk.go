package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/types"
)

// StopTradingWarning is appended whenever the daily loss limit is breached.
const StopTradingWarning = "🛑 STOP TRADING TODAY!"

var hundred = decimal.NewFromInt(100)

// adverseEmotions are the emotional states that earn a warning.
var adverseEmotions = map[string]bool{
	"fomo":      true,
	"revenge":   true,
	"fear":      true,
	"greed":     true,
	"impulsive": true,
}

// Evaluate applies the risk rules in order to a completed record.
//
// Only the daily loss limit blocks; every other finding is a warning. The
// projected total is returned even when blocking and must not be persisted.
func Evaluate(rec types.TradeRecord, todayPnLBefore decimal.Decimal, limits types.RiskLimits) types.RiskDecision {
	warnings := []string{}
	allowed := true
	pnl := rec.ProfitLoss

	// Check 1: max loss per trade
	if pnl.LessThan(limits.MaxLossPerTrade) {
		warnings = append(warnings, fmt.Sprintf("⚠️ Trade loss %s exceeds limit %s",
			money(pnl), money(limits.MaxLossPerTrade)))
	}

	// Check 2: daily max loss
	projected := todayPnLBefore.Add(pnl)
	if projected.LessThan(limits.MaxLossPerDay) {
		warnings = append(warnings,
			fmt.Sprintf("🚨 DAILY LIMIT BREACH!\nToday's P&L: %s\nLimit: %s", money(projected), money(limits.MaxLossPerDay)),
			StopTradingWarning,
		)
		allowed = false
	}

	// Check 3: risk as a share of trading capital
	if rec.CapitalInvested.Valid && rec.CapitalInvested.Decimal.IsPositive() && limits.TradingCapital.IsPositive() {
		riskPct := pnl.Abs().Div(limits.TradingCapital).Mul(hundred)
		if riskPct.GreaterThan(limits.MaxRiskPct) {
			warnings = append(warnings, fmt.Sprintf("⚠️ Risk %s%% > %s%% limit",
				riskPct.StringFixed(2), limits.MaxRiskPct.String()))
		}
	}

	// Check 4: emotional trading
	if rec.Emotion != "" && adverseEmotions[strings.ToLower(rec.Emotion)] {
		warnings = append(warnings, fmt.Sprintf("⚠️ Emotional trade: %s", rec.Emotion))
	}

	return types.RiskDecision{
		Allowed:             allowed,
		Warnings:            warnings,
		ProjectedDailyTotal: projected,
	}
}

func money(d decimal.Decimal) string {
	return types.Currency + d.StringFixed(2)
}
