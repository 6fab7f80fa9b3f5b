package ledger

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/types"
)

const (
	dayFileExt = ".jsonl"
	gzipExt    = ".gz"
)

// JSONLLedger appends one JSON object per row to a file per trade date under dir.
// Compressed day files written by CompressOlder remain readable.
type JSONLLedger struct {
	mu  sync.Mutex
	dir string
	loc *time.Location
	now func() time.Time
}

var _ interfaces.Ledger = (*JSONLLedger)(nil)

func NewJSONL(dir string, loc *time.Location) *JSONLLedger {
	return &JSONLLedger{dir: dir, loc: loc, now: time.Now}
}

func (l *JSONLLedger) dayFilepath(date string) string {
	return filepath.Join(l.dir, date+dayFileExt)
}

func (l *JSONLLedger) AppendRow(ctx context.Context, rec types.TradeRecord, derived types.DerivedFields) (types.LedgerRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().In(l.loc)
	row := types.NewLedgerRow(rec, derived)
	id, err := newTradeID(now)
	if err != nil {
		return types.LedgerRow{}, fmt.Errorf("failed to generate trade id: %w", err)
	}
	row.TradeID = id
	row.Time = now.Format(types.TimeLayout)

	b, err := json.Marshal(row)
	if err != nil {
		return types.LedgerRow{}, err
	}

	p := l.dayFilepath(row.Date)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return types.LedgerRow{}, err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return types.LedgerRow{}, err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(b)); err != nil {
		return types.LedgerRow{}, err
	}
	return row, nil
}

func (l *JSONLLedger) ReadAllRowsForDate(ctx context.Context, date time.Time) ([]types.LedgerRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.dayFilepath(date.In(l.loc).Format(types.DateLayout))

	var rows []types.LedgerRow
	for _, path := range []string{p + gzipExt, p} {
		got, err := readDayFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, got...)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TradeID < rows[j].TradeID })
	return rows, nil
}

func (l *JSONLLedger) Close() error { return nil }

// readDayFile returns no rows when path does not exist.
func readDayFile(path string) ([]types.LedgerRow, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == gzipExt {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer gr.Close()
		r = gr
	}

	var rows []types.LedgerRow
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var row types.LedgerRow
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rows = append(rows, row)
	}
	return rows, sc.Err()
}

// CompressOlder gzips day files under dir last modified more than
// retentionDays ago. Zero or negative retention disables compression.
func CompressOlder(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != dayFileExt {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		return compressFile(p)
	})
}

// compressFile replaces p with p.gz. When p.gz already exists p is appended
// to a fresh archive holding both, so no rows are lost.
func compressFile(p string) error {
	gz := p + gzipExt

	existing, err := readRaw(gz)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(p)
	if err != nil {
		return nil
	}

	tmp := gz + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	_, err = gw.Write(append(existing, current...))
	if cerr := gw.Close(); err == nil {
		err = cerr
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, gz); err != nil {
		return err
	}
	return os.Remove(p)
}

func readRaw(gz string) ([]byte, error) {
	f, err := os.Open(gz)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
