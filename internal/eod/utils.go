package eod

import (
	"path/filepath"
	"time"

	"llm-trade-journal/internal/types"
)

func eodCSVPath(logDir string, t time.Time) string {
	return filepath.Join(logDir, "eod", t.Format(types.DateLayout)+".csv")
}
