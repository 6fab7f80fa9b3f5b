package ledger

import (
	"fmt"
	"path/filepath"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/store"
)

// JSONLDir is where the JSONL driver keeps its day files.
func JSONLDir(logDir string) string {
	return filepath.Join(logDir, "journal")
}

// New opens the ledger selected by cfg.Ledger.Driver.
func New(cfg *store.Config) (interfaces.Ledger, error) {
	switch cfg.Ledger.Driver {
	case "SQLITE":
		return OpenSQLite(cfg.Ledger.Path, cfg.Location())
	case "JSONL":
		return NewJSONL(JSONLDir(cfg.LogDir), cfg.Location()), nil
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
	}
}
