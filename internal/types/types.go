package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in prompts and ledger rows.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format of the ledger "Time" column.
const TimeLayout = "15:04:05"

// Currency prefixes money amounts in replies and warnings.
const Currency = "₹"

// UnknownSymbol is stored when the oracle could not name the instrument.
const UnknownSymbol = "UNKNOWN"

type InstrumentType string

const (
	Equity   InstrumentType = "Equity"
	Intraday InstrumentType = "Intraday"
	Option   InstrumentType = "Option"
	Future   InstrumentType = "Future"
	Swing    InstrumentType = "Swing"
)

// ParseInstrumentType maps free text onto a known instrument type.
// Anything unrecognized is Equity.
func ParseInstrumentType(s string) InstrumentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intraday":
		return Intraday
	case "option", "options":
		return Option
	case "future", "futures":
		return Future
	case "swing":
		return Swing
	default:
		return Equity
	}
}

type Direction string

const (
	Long    Direction = "Long"
	Short   Direction = "Short"
	Unknown Direction = "Unknown"
)

// ParseDirection maps free text onto Long/Short, defaulting to Unknown.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy", "bought":
		return Long
	case "short", "sell", "sold":
		return Short
	default:
		return Unknown
	}
}

// TradeRecord is the canonical, fully completed trade extracted from one message.
type TradeRecord struct {
	Date            time.Time           `json:"date"`
	Symbol          string              `json:"symbol"`
	InstrumentType  InstrumentType      `json:"instrument_type"`
	Direction       Direction           `json:"trade_direction"`
	BuyPrice        decimal.NullDecimal `json:"buy_price"`
	SellPrice       decimal.NullDecimal `json:"sell_price"`
	Quantity        *int64              `json:"quantity"`
	CapitalInvested decimal.NullDecimal `json:"capital_invested"`
	ProfitLoss      decimal.Decimal     `json:"profit_loss"`
	Strategy        string              `json:"strategy,omitempty"`
	Emotion         string              `json:"emotion,omitempty"`
	RawMessage      string              `json:"raw_message"`
	Notes           string              `json:"notes,omitempty"`
}

// DateString returns the record date in DateLayout.
func (r TradeRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// DerivedFields are presentation values computed when a record is persisted.
type DerivedFields struct {
	PnLPct  decimal.Decimal
	RiskPct decimal.Decimal
	WinLoss string
}

// RiskLimits are the configured thresholds the risk evaluator applies.
// Loss limits are negative numbers.
type RiskLimits struct {
	MaxLossPerTrade decimal.Decimal
	MaxLossPerDay   decimal.Decimal
	TradingCapital  decimal.Decimal
	MaxRiskPct      decimal.Decimal
}

// RiskDecision is the outcome of evaluating one trade.
type RiskDecision struct {
	Allowed             bool            `json:"allowed"`
	Warnings            []string        `json:"warnings"`
	ProjectedDailyTotal decimal.Decimal `json:"projected_daily_total"`
}

// GenerateOptions configure a single oracle completion.
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}
