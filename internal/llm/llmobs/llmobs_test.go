package llmobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/types"
)

type stubOracle struct {
	text string
	err  error
}

func (s stubOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	return s.text, s.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	require.NoError(t, logger.InitWithConfig(logger.LogConfig{Level: "INFO", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = logger.InitWithConfig(logger.LogConfig{Level: "INFO"}) })
	return &buf
}

func TestGenerateWarnsOnEmptyCompletion(t *testing.T) {
	buf := captureLogs(t)

	got, err := Wrap(stubOracle{text: "  \n"}, "GEMINI").Generate(context.Background(), "p", types.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "  \n", got)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "Completion was empty")
}

func TestGeneratePassesThrough(t *testing.T) {
	buf := captureLogs(t)

	got, err := Wrap(stubOracle{text: `{"symbol":"TCS"}`}, "CLAUDE").Generate(context.Background(), "p", types.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"symbol":"TCS"}`, got)
	assert.Contains(t, buf.String(), "Completion received")

	_, err = Wrap(stubOracle{err: errors.New("503")}, "CLAUDE").Generate(context.Background(), "p", types.GenerateOptions{})
	assert.ErrorContains(t, err, "503")
}
