package eod

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-trade-journal/internal/types"
)

var ist = time.FixedZone("IST", 19800)

type rowsLedger struct {
	rows []types.LedgerRow
	err  error
}

func (l *rowsLedger) AppendRow(ctx context.Context, rec types.TradeRecord, derived types.DerivedFields) (types.LedgerRow, error) {
	return types.LedgerRow{}, errors.New("read only")
}

func (l *rowsLedger) ReadAllRowsForDate(ctx context.Context, date time.Time) ([]types.LedgerRow, error) {
	return l.rows, l.err
}

func (l *rowsLedger) Close() error { return nil }

func row(symbol, pnl string) types.LedgerRow {
	return types.LedgerRow{Symbol: symbol, PnL: decimal.RequireFromString(pnl)}
}

func TestSummarize(t *testing.T) {
	s := Summarize("2025-03-14", []types.LedgerRow{
		row("NIFTY", "1500"), row("TCS", "-400.5"), row("INFY", "0"), row("NIFTY", "-99.5"),
	})

	assert.Equal(t, "1000", s.Total.String())
	assert.Equal(t, 4, s.Trades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, "25", s.WinRate.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("2025-03-14", nil)
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.Trades)
	assert.True(t, s.WinRate.IsZero())
}

func TestSummarizeDayWritesCSV(t *testing.T) {
	dir := t.TempDir()
	l := &rowsLedger{rows: []types.LedgerRow{row("TCS", "200"), row("NIFTY", "-300"), row("NIFTY", "500")}}

	path, err := NewSummarizer(l, dir, ist).SummarizeDay(context.Background(), time.Date(2025, 3, 14, 15, 40, 0, 0, ist))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "eod", "2025-03-14.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"symbol", "trades", "wins", "losses", "gross_profit", "gross_loss", "net_pnl"},
		{"NIFTY", "2", "1", "1", "500.00", "-300.00", "200.00"},
		{"TCS", "1", "1", "0", "200.00", "0.00", "200.00"},
		{"TOTAL", "3", "2", "1", "", "", "400.00"},
	}, records)
}

func TestSummarizeDayNoTrades(t *testing.T) {
	path, err := NewSummarizer(&rowsLedger{}, t.TempDir(), ist).SummarizeDay(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSummarizeDayReadError(t *testing.T) {
	_, err := NewSummarizer(&rowsLedger{err: errors.New("locked")}, t.TempDir(), ist).SummarizeDay(context.Background(), time.Now())
	assert.ErrorContains(t, err, "locked")
}
