package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"llm-trade-journal/internal/engine"
	"llm-trade-journal/internal/engine/engineobs"
	"llm-trade-journal/internal/eod"
	"llm-trade-journal/internal/eod/eodobs"
	"llm-trade-journal/internal/extract"
	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/ledger"
	"llm-trade-journal/internal/ledger/ledgerobs"
	"llm-trade-journal/internal/llm/claude"
	"llm-trade-journal/internal/llm/gemini"
	"llm-trade-journal/internal/llm/llmobs"
	"llm-trade-journal/internal/llm/noop"
	"llm-trade-journal/internal/llm/openai"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

// initializeSystem initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old JSONL journal files if retention is configured
func compressOldLogs(ctx context.Context, cfg *store.Config) {
	if cfg.Ledger.Driver != "JSONL" || cfg.LogRetentionDays <= 0 {
		return
	}
	if err := ledger.CompressOlder(ledger.JSONLDir(cfg.LogDir), cfg.LogRetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old journal files", "error", err)
	}
}

// initializeOracle initializes and returns the LLM oracle with observability
func initializeOracle(ctx context.Context, cfg *store.Config) (interfaces.Oracle, error) {
	var (
		oracle interfaces.Oracle
		err    error
	)

	switch cfg.LLM.Provider {
	case "GEMINI":
		oracle, err = gemini.NewGeminiOracle(cfg)
	case "CLAUDE":
		oracle, err = claude.NewClaudeOracle(cfg)
	case "OPENAI":
		oracle, err = openai.NewOpenAIOracle(cfg)
	default:
		oracle = noop.NewNoopOracle()
		logger.Warn(ctx, "No LLM provider configured - every trade message will fail extraction")
	}
	if err != nil {
		return nil, fmt.Errorf("initialize %s oracle: %w", cfg.LLM.Provider, err)
	}

	logger.Info(ctx, "LLM oracle ready", "provider", cfg.LLM.Provider, "model", cfg.LLMModel())

	// Wrap with observability middleware
	return llmobs.Wrap(oracle, cfg.LLM.Provider), nil
}

// initializeLedger opens the configured ledger with observability
func initializeLedger(ctx context.Context, cfg *store.Config) (interfaces.Ledger, error) {
	l, err := ledger.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Ledger opened", "driver", cfg.Ledger.Driver)
	return ledgerobs.Wrap(l), nil
}

// app holds the wired components shared by every command.
type app struct {
	cfg     *store.Config
	ledger  interfaces.Ledger
	core    *engine.Journal    // unwrapped, for dry runs
	journal interfaces.Journal // observable, for chat traffic
	eod     interfaces.EodSummarizer
}

func newApp(ctx context.Context, cfg *store.Config) (*app, error) {
	compressOldLogs(ctx, cfg)

	oracle, err := initializeOracle(ctx, cfg)
	if err != nil {
		return nil, err
	}

	l, err := initializeLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := extract.NewPipeline(oracle, types.GenerateOptions{
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxTokens,
	})
	core := engine.New(pipeline, l, cfg.RiskLimits(), cfg.Location())

	return &app{
		cfg:     cfg,
		ledger:  l,
		core:    core,
		journal: engineobs.Wrap(core),
		eod:     eodobs.Wrap(eod.NewSummarizer(l, cfg.LogDir, cfg.Location())),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.ledger.Close(); err != nil {
		logger.Warn(ctx, "Failed to close ledger", "error", err)
	}
}
