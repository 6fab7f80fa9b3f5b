package eod

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/types"
)

type eodSummarizer struct {
	ledger interfaces.Ledger
	logDir string
	loc    *time.Location
	now    func() time.Time
}

// NewSummarizer writes per-symbol CSV reports of a day's journal rows under <logDir>/eod.
func NewSummarizer(ledger interfaces.Ledger, logDir string, loc *time.Location) interfaces.EodSummarizer {
	return &eodSummarizer{ledger: ledger, logDir: logDir, loc: loc, now: time.Now}
}

// SummarizeDay returns "" without error when the day has no trades.
func (s *eodSummarizer) SummarizeDay(ctx context.Context, t time.Time) (string, error) {
	t = t.In(s.loc)
	rows, err := s.ledger.ReadAllRowsForDate(ctx, t)
	if err != nil {
		return "", fmt.Errorf("read journal for %s: %w", t.Format(types.DateLayout), err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	aggs := map[string]*aggRow{}
	for _, r := range rows {
		row := aggs[r.Symbol]
		if row == nil {
			row = &aggRow{Symbol: r.Symbol, GrossProfit: decimal.Zero, GrossLoss: decimal.Zero, NetPnL: decimal.Zero}
			aggs[r.Symbol] = row
		}
		row.Trades++
		switch {
		case r.PnL.IsPositive():
			row.Wins++
			row.GrossProfit = row.GrossProfit.Add(r.PnL)
		case r.PnL.IsNegative():
			row.Losses++
			row.GrossLoss = row.GrossLoss.Add(r.PnL)
		}
		row.NetPnL = row.NetPnL.Add(r.PnL)
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := eodCSVPath(s.logDir, t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	headers := []string{"symbol", "trades", "wins", "losses", "gross_profit", "gross_loss", "net_pnl"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, k := range keys {
		r := aggs[k]
		rec := []string{
			r.Symbol,
			strconv.Itoa(r.Trades),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			r.GrossProfit.StringFixed(2),
			r.GrossLoss.StringFixed(2),
			r.NetPnL.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	sum := Summarize(t.Format(types.DateLayout), rows)
	if err := w.Write([]string{"TOTAL", strconv.Itoa(sum.Trades), strconv.Itoa(sum.Wins), strconv.Itoa(sum.Losses), "", "", sum.Total.StringFixed(2)}); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return outPath, nil
}

func (s *eodSummarizer) SummarizeToday(ctx context.Context) (string, error) {
	return s.SummarizeDay(ctx, s.now())
}
