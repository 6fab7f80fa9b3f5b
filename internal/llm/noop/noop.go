package noop

import (
	"context"
	"errors"

	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/types"
)

// ErrNoOracle is returned by every NoopOracle call.
var ErrNoOracle = errors.New("no LLM provider configured")

// NoopOracle is the fallback used when no LLM provider is configured. Every
// message then fails extraction with an OracleFailure.
type NoopOracle struct{}

func NewNoopOracle() *NoopOracle {
	return &NoopOracle{}
}

func (o *NoopOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	logger.Debug(ctx, "Noop oracle called - no LLM provider configured")
	return "", ErrNoOracle
}
