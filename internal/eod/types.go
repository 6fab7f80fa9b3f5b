package eod

import "github.com/shopspring/decimal"

// Summary aggregates one day of journal rows.
type Summary struct {
	Date    string          // Calendar day summarized
	Total   decimal.Decimal // Sum of P&L over all rows
	Trades  int             // Number of rows
	Wins    int             // Rows with positive P&L
	Losses  int             // Rows with negative P&L
	WinRate decimal.Decimal // Wins as a percentage of Trades
}

// aggRow represents aggregated statistics for a symbol in the EOD CSV.
type aggRow struct {
	Symbol      string          // Trading symbol
	Trades      int             // Rows for the symbol
	Wins        int             // Winning rows
	Losses      int             // Losing rows
	GrossProfit decimal.Decimal // Sum of positive P&L
	GrossLoss   decimal.Decimal // Sum of negative P&L
	NetPnL      decimal.Decimal // GrossProfit + GrossLoss
}
