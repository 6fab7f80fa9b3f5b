package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// LedgerColumns is the ordered header of the trade journal.
var LedgerColumns = []string{
	"Trade ID", "Date", "Time", "Symbol", "Instrument", "Direction",
	"Buy Price", "Sell Price", "Quantity", "Capital", "P&L", "P&L %",
	"Risk %", "R-Multiple", "Strategy", "Emotion", "Win/Loss", "Raw Message", "Notes",
}

// LedgerRow is one persisted journal row. Optional columns are empty strings
// when the record had no value; RMultiple is reserved and always blank.
type LedgerRow struct {
	TradeID    string          `json:"trade_id"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Symbol     string          `json:"symbol"`
	Instrument string          `json:"instrument"`
	Direction  string          `json:"direction"`
	BuyPrice   string          `json:"buy_price"`
	SellPrice  string          `json:"sell_price"`
	Quantity   string          `json:"quantity"`
	Capital    string          `json:"capital"`
	PnL        decimal.Decimal `json:"pnl"`
	PnLPct     decimal.Decimal `json:"pnl_pct"`
	RiskPct    decimal.Decimal `json:"risk_pct"`
	RMultiple  string          `json:"r_multiple"`
	Strategy   string          `json:"strategy"`
	Emotion    string          `json:"emotion"`
	WinLoss    string          `json:"win_loss"`
	RawMessage string          `json:"raw_message"`
	Notes      string          `json:"notes"`
}

// NewLedgerRow lays out a record and its derived fields as a journal row.
// TradeID and Time are filled by the ledger at append time.
func NewLedgerRow(rec TradeRecord, derived DerivedFields) LedgerRow {
	row := LedgerRow{
		Date:       rec.DateString(),
		Symbol:     rec.Symbol,
		Instrument: string(rec.InstrumentType),
		Direction:  string(rec.Direction),
		BuyPrice:   nullString(rec.BuyPrice),
		SellPrice:  nullString(rec.SellPrice),
		Capital:    nullString(rec.CapitalInvested),
		PnL:        rec.ProfitLoss,
		PnLPct:     derived.PnLPct,
		RiskPct:    derived.RiskPct,
		Strategy:   rec.Strategy,
		Emotion:    rec.Emotion,
		WinLoss:    derived.WinLoss,
		RawMessage: rec.RawMessage,
		Notes:      rec.Notes,
	}
	if rec.Quantity != nil {
		row.Quantity = strconv.FormatInt(*rec.Quantity, 10)
	}
	return row
}

// Values returns the row in LedgerColumns order.
func (r LedgerRow) Values() []string {
	return []string{
		r.TradeID, r.Date, r.Time, r.Symbol, r.Instrument, r.Direction,
		r.BuyPrice, r.SellPrice, r.Quantity, r.Capital,
		r.PnL.StringFixed(2), r.PnLPct.StringFixed(2), r.RiskPct.StringFixed(2),
		r.RMultiple, r.Strategy, r.Emotion, r.WinLoss, r.RawMessage, r.Notes,
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
