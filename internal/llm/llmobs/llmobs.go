package llmobs

import (
	"context"
	"strings"
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

// observableOracle wraps an Oracle with observability (logging & tracing)
type observableOracle struct {
	oracle   interfaces.Oracle
	provider string
}

// Compile-time interface check
var _ interfaces.Oracle = (*observableOracle)(nil)

// Wrap wraps an oracle with observability middleware
func Wrap(oracle interfaces.Oracle, provider string) interfaces.Oracle {
	return &observableOracle{
		oracle:   oracle,
		provider: provider,
	}
}

func (oo *observableOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", oo.provider,
		"prompt_chars", len(prompt),
		"temperature", opts.Temperature,
		"max_output_tokens", opts.MaxOutputTokens,
	)

	start := time.Now()
	text, err := oo.oracle.Generate(ctx, prompt, opts)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"provider", oo.provider,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		logger.WarnSkip(ctx, 1, "Completion was empty",
			"provider", oo.provider,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return text, nil
	}

	logger.InfoSkip(ctx, 1, "Completion received",
		"provider", oo.provider,
		"response_chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
