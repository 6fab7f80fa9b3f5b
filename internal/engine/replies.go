package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/eod"
)

const startReply = "🤖 AI Trading Tracker Active\n\n" +
	"Send me trades in plain text:\n" +
	"• Bought 200 Suzlon at 42.5, sold at 44\n" +
	"• Nifty 23500 CE, invested 15k, exited at 17.5k\n" +
	"• Loss 1200 in BankNifty PE\n\n" +
	"Commands:\n" +
	"/stats - Today's performance\n" +
	"/daily - Daily summary"

func recordedReply(out Outcome) string {
	rec := out.Record
	var b strings.Builder
	b.WriteString("✅ Trade Logged\n\n")
	fmt.Fprintf(&b, "📊 %s | %s\n", rec.Symbol, rec.InstrumentType)
	fmt.Fprintf(&b, "💰 P&L: %s\n", money(rec.ProfitLoss))
	fmt.Fprintf(&b, "📈 Today Total: %s\n", money(out.Decision.ProjectedDailyTotal))
	if rec.Strategy != "" {
		fmt.Fprintf(&b, "🎯 Strategy: %s\n", rec.Strategy)
	}
	if len(out.Decision.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(out.Decision.Warnings, "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func blockedReply(out Outcome) string {
	return "🚫 TRADE NOT LOGGED\n\n" + strings.Join(out.Decision.Warnings, "\n")
}

func errorReply(err error, raw string) string {
	return fmt.Sprintf("❌ Error: %v\n\nMessage: %s", err, raw)
}

func appendFailedReply(err error, raw string) string {
	return fmt.Sprintf("❌ Trade NOT recorded: %v\n\nMessage: %s", err, raw)
}

// lossBuffer is how much more can be lost today before the daily limit is breached.
func lossBuffer(today, maxLossPerDay decimal.Decimal) decimal.Decimal {
	return today.Sub(maxLossPerDay)
}

func statsReply(today, maxLossPerDay decimal.Decimal) string {
	return fmt.Sprintf("📊 Today's Performance\n\n💰 Total P&L: %s\n🛡️ Loss Buffer: %s\n📉 Daily Limit: %s",
		money(today), money(lossBuffer(today, maxLossPerDay)), money(maxLossPerDay))
}

func dailyReply(s eod.Summary, maxLossPerDay decimal.Decimal) string {
	return fmt.Sprintf("📊 Daily Summary (%s)\n\n💰 Total P&L: %s\n📈 Trades: %d\n✅ Wins: %d\n❌ Losses: %d\n📊 Win Rate: %s%%\n🛡️ Buffer: %s",
		s.Date, money(s.Total), s.Trades, s.Wins, s.Losses, s.WinRate.StringFixed(1), money(lossBuffer(s.Total, maxLossPerDay)))
}

func dailyFallbackReply(total decimal.Decimal) string {
	return fmt.Sprintf("📊 Daily Summary\n\n💰 Total P&L: %s", money(total))
}
