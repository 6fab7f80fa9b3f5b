package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/types"
)

// DefaultMaxAttempts is the number of oracle calls made before a malformed
// response is reported.
const DefaultMaxAttempts = 2

var (
	errEmptyResult = errors.New("oracle returned an empty list")
	errNotObject   = errors.New("oracle response is not a JSON object")
)

// Pipeline turns a raw chat message into a completed TradeRecord via the oracle.
type Pipeline struct {
	oracle      interfaces.Oracle
	opts        types.GenerateOptions
	maxAttempts int
}

// NewPipeline creates a pipeline calling oracle with opts.
func NewPipeline(oracle interfaces.Oracle, opts types.GenerateOptions) *Pipeline {
	return &Pipeline{oracle: oracle, opts: opts, maxAttempts: DefaultMaxAttempts}
}

// Extract prompts the oracle, sanitizes and parses its answer and completes the
// record. Only unparseable answers are retried; oracle errors and empty lists
// fail immediately. All failures are *ExtractionError.
func (p *Pipeline) Extract(ctx context.Context, rawMessage string, today time.Time) (types.TradeRecord, error) {
	prompt := BuildPrompt(rawMessage, today)

	var (
		lastErr      error
		lastResponse string
		attempt      int
	)
	for attempt = 1; attempt <= p.maxAttempts; attempt++ {
		response, err := p.oracle.Generate(ctx, prompt, p.opts)
		if err != nil {
			return types.TradeRecord{}, &ExtractionError{
				Kind:       OracleFailure,
				Attempts:   attempt,
				RawMessage: rawMessage,
				Err:        err,
			}
		}

		cleaned := Sanitize(response)
		logger.Debug(ctx, "Oracle response sanitized",
			"attempt", attempt,
			"raw", truncate(response, 200),
			"cleaned", truncate(cleaned, 200),
		)

		parsed, err := parseExtraction(cleaned)
		if err == nil {
			return Complete(parsed, rawMessage, today), nil
		}
		if errors.Is(err, errEmptyResult) {
			return types.TradeRecord{}, &ExtractionError{
				Kind:       EmptyResult,
				Attempts:   attempt,
				RawMessage: rawMessage,
				Response:   response,
				Err:        err,
			}
		}

		lastErr, lastResponse = err, response
		logger.Warn(ctx, "Oracle response was not valid JSON",
			"attempt", attempt,
			"max_attempts", p.maxAttempts,
			"error", err,
			"response", truncate(response, 200),
		)
		if ctx.Err() != nil {
			break
		}
	}

	if attempt > p.maxAttempts {
		attempt = p.maxAttempts
	}
	return types.TradeRecord{}, &ExtractionError{
		Kind:       MalformedResponse,
		Attempts:   attempt,
		RawMessage: rawMessage,
		Response:   lastResponse,
		Err:        lastErr,
	}
}

// parseExtraction decodes sanitized text. A JSON array yields its first element.
func parseExtraction(text string) (Extraction, error) {
	doc := bytes.TrimSpace([]byte(text))
	if bytes.HasPrefix(doc, []byte("[")) {
		var items []json.RawMessage
		if err := json.Unmarshal(doc, &items); err != nil {
			return Extraction{}, err
		}
		if len(items) == 0 {
			return Extraction{}, errEmptyResult
		}
		doc = bytes.TrimSpace(items[0])
	}
	if !bytes.HasPrefix(doc, []byte("{")) {
		return Extraction{}, errNotObject
	}

	var e Extraction
	if err := json.Unmarshal(doc, &e); err != nil {
		return Extraction{}, err
	}
	return e, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
