package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id    TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	time        TEXT NOT NULL,
	symbol      TEXT NOT NULL,
	instrument  TEXT NOT NULL,
	direction   TEXT NOT NULL,
	buy_price   TEXT NOT NULL DEFAULT '',
	sell_price  TEXT NOT NULL DEFAULT '',
	quantity    TEXT NOT NULL DEFAULT '',
	capital     TEXT NOT NULL DEFAULT '',
	pnl         TEXT NOT NULL,
	pnl_pct     TEXT NOT NULL,
	risk_pct    TEXT NOT NULL,
	r_multiple  TEXT NOT NULL DEFAULT '',
	strategy    TEXT NOT NULL DEFAULT '',
	emotion     TEXT NOT NULL DEFAULT '',
	win_loss    TEXT NOT NULL,
	raw_message TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`

const columns = `trade_id, date, time, symbol, instrument, direction, buy_price, sell_price,
	quantity, capital, pnl, pnl_pct, risk_pct, r_multiple, strategy, emotion, win_loss,
	raw_message, notes`

// SQLiteLedger stores journal rows in a single SQLite table. Money columns are
// TEXT so decimals round-trip exactly.
type SQLiteLedger struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

var _ interfaces.Ledger = (*SQLiteLedger)(nil)

// OpenSQLite opens (creating if needed) the journal database at path.
func OpenSQLite(path string, loc *time.Location) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	// A single connection serializes appends.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return &SQLiteLedger{db: db, loc: loc, now: time.Now}, nil
}

func (l *SQLiteLedger) AppendRow(ctx context.Context, rec types.TradeRecord, derived types.DerivedFields) (types.LedgerRow, error) {
	now := l.now().In(l.loc)
	row := types.NewLedgerRow(rec, derived)

	id, err := newTradeID(now)
	if err != nil {
		return types.LedgerRow{}, fmt.Errorf("failed to generate trade id: %w", err)
	}
	row.TradeID = id
	row.Time = now.Format(types.TimeLayout)

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO trades (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.TradeID, row.Date, row.Time, row.Symbol, row.Instrument, row.Direction,
		row.BuyPrice, row.SellPrice, row.Quantity, row.Capital,
		row.PnL.String(), row.PnLPct.String(), row.RiskPct.String(), row.RMultiple,
		row.Strategy, row.Emotion, row.WinLoss, row.RawMessage, row.Notes,
	)
	if err != nil {
		return types.LedgerRow{}, fmt.Errorf("failed to insert trade: %w", err)
	}
	return row, nil
}

func (l *SQLiteLedger) ReadAllRowsForDate(ctx context.Context, date time.Time) ([]types.LedgerRow, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+columns+` FROM trades WHERE date = ? ORDER BY trade_id`,
		date.In(l.loc).Format(types.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var out []types.LedgerRow
	for rows.Next() {
		var r types.LedgerRow
		err := rows.Scan(
			&r.TradeID, &r.Date, &r.Time, &r.Symbol, &r.Instrument, &r.Direction,
			&r.BuyPrice, &r.SellPrice, &r.Quantity, &r.Capital,
			&r.PnL, &r.PnLPct, &r.RiskPct, &r.RMultiple,
			&r.Strategy, &r.Emotion, &r.WinLoss, &r.RawMessage, &r.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return out, nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
