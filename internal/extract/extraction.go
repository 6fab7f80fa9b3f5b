package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Extraction is the oracle's JSON answer decoded at the boundary. Every field
// is optional; Complete turns it into a TradeRecord.
type Extraction struct {
	Date            looseString  `json:"date"`
	Symbol          looseString  `json:"symbol"`
	InstrumentType  looseString  `json:"instrument_type"`
	Direction       looseString  `json:"trade_direction"`
	BuyPrice        looseDecimal `json:"buy_price"`
	SellPrice       looseDecimal `json:"sell_price"`
	Quantity        looseDecimal `json:"quantity"`
	CapitalInvested looseDecimal `json:"capital_invested"`
	ProfitLoss      looseDecimal `json:"profit_loss"`
	Strategy        looseString  `json:"strategy"`
	Emotion         looseString  `json:"emotion"`
	Notes           looseString  `json:"notes"`
}

// looseString accepts strings, numbers and booleans; null and other shapes are empty.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = looseString(strings.TrimSpace(t))
	case float64, bool:
		*s = looseString(fmt.Sprint(t))
	default:
		*s = ""
	}
	return nil
}

func (s looseString) String() string { return string(s) }

// looseDecimal accepts JSON numbers and numeric strings such as "₹3,000".
// null, empty and unparsable values are left invalid rather than failing the document.
type looseDecimal struct {
	decimal.NullDecimal
}

func (d *looseDecimal) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	d.Valid = false
	switch t := v.(type) {
	case float64:
		// keep the literal digits rather than the float64 approximation
		if parsed, err := decimal.NewFromString(strings.TrimSpace(string(b))); err == nil {
			d.Decimal, d.Valid = parsed, true
		} else {
			d.Decimal, d.Valid = decimal.NewFromFloat(t), true
		}
	case string:
		cleaned := strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", " ", "").Replace(t)
		if parsed, err := decimal.NewFromString(cleaned); err == nil {
			d.Decimal, d.Valid = parsed, true
		}
	}
	return nil
}

// positive reports whether the value is present and strictly greater than zero.
func (d looseDecimal) positive() bool {
	return d.Valid && d.Decimal.IsPositive()
}
