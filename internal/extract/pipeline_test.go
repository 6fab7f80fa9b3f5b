package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-trade-journal/internal/types"
)

// stubOracle replays canned responses and records every call.
type stubOracle struct {
	responses []string
	err       error
	calls     int
	prompts   []string
	opts      []types.GenerateOptions
}

func (s *stubOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	i := s.calls - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

var zeroTemp = types.GenerateOptions{Temperature: 0, MaxOutputTokens: 1000}

func TestExtractSuzlonDerivesProfitLoss(t *testing.T) {
	raw := "Bought 200 Suzlon at 42.5, sold at 44, profit 3000"
	oracle := &stubOracle{responses: []string{
		"```json\n" + `{"date":"2025-03-14","symbol":"SUZLON","instrument_type":"Equity","trade_direction":"Long",` +
			`"buy_price":42.5,"sell_price":44,"quantity":200,"capital_invested":8500,"profit_loss":null,` +
			`"strategy":null,"emotion":null,"notes":null}` + "\n```",
	}}

	rec, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), raw, today())
	require.NoError(t, err)

	assert.Equal(t, "300", rec.ProfitLoss.String())
	assert.Equal(t, "SUZLON", rec.Symbol)
	assert.Equal(t, types.Long, rec.Direction)
	assert.Equal(t, raw, rec.RawMessage)
	assert.Equal(t, 1, oracle.calls)
}

func TestExtractPromptAndOptions(t *testing.T) {
	oracle := &stubOracle{responses: []string{`{"symbol":"TCS"}`}}

	_, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), `Loss 1200 in "BankNifty" PE`, today())
	require.NoError(t, err)

	require.Len(t, oracle.prompts, 1)
	prompt := oracle.prompts[0]
	assert.Contains(t, prompt, "TODAY: 2025-03-14")
	assert.Contains(t, prompt, `Loss 1200 in \"BankNifty\" PE`)
	assert.Contains(t, prompt, "profit_loss: ONLY if explicitly stated")
	assert.Equal(t, zeroTemp, oracle.opts[0])
}

func TestExtractRetriesOnceThenFails(t *testing.T) {
	oracle := &stubOracle{responses: []string{"sorry, I can't help with that"}}

	_, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "gibberish", today())
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, MalformedResponse, xerr.Kind)
	assert.Equal(t, DefaultMaxAttempts, xerr.Attempts)
	assert.Equal(t, "gibberish", xerr.RawMessage)
	assert.Equal(t, DefaultMaxAttempts, oracle.calls)
}

func TestExtractRecoversOnSecondAttempt(t *testing.T) {
	oracle := &stubOracle{responses: []string{
		`{"symbol": "TCS", "quantity": }`,
		`{"symbol": "TCS", "quantity": 5, "buy_price": 3500, "sell_price": 3520,}`,
	}}

	rec, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "tcs 5 @3500 out 3520", today())
	require.NoError(t, err)

	assert.Equal(t, 2, oracle.calls)
	assert.Equal(t, "100", rec.ProfitLoss.String())
}

func TestExtractArrayTakesFirstElement(t *testing.T) {
	oracle := &stubOracle{responses: []string{`[{"symbol":"INFY","profit_loss":-800},{"symbol":"TCS"}]`}}

	rec, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "infy loss 800", today())
	require.NoError(t, err)

	assert.Equal(t, "INFY", rec.Symbol)
	assert.Equal(t, "-800", rec.ProfitLoss.String())
}

func TestExtractEmptyArray(t *testing.T) {
	oracle := &stubOracle{responses: []string{"```json\n[]\n```"}}

	_, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "hello", today())

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, EmptyResult, xerr.Kind)
	assert.Equal(t, 1, oracle.calls)
}

func TestExtractOracleFailureIsNotRetried(t *testing.T) {
	boom := errors.New("connection reset")
	oracle := &stubOracle{err: boom}

	_, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "hello", today())

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, OracleFailure, xerr.Kind)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, oracle.calls)
	assert.True(t, strings.Contains(err.Error(), "OracleFailure"))
}

func TestExtractRejectsNonObjectJSON(t *testing.T) {
	oracle := &stubOracle{responses: []string{`"just a string"`}}

	_, err := NewPipeline(oracle, zeroTemp).Extract(context.Background(), "hello", today())

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, MalformedResponse, xerr.Kind)
}
