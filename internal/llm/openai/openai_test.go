package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/types"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body["model"])
		assert.EqualValues(t, 1000, body["max_completion_tokens"])
		msgs, _ := body["messages"].([]any)
		assert.Len(t, msgs, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-test",` +
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"symbol\":\"INFY\"}"}}]}`))
	}))
	defer srv.Close()

	cfg := store.Default()
	cfg.LLM.Provider = "OPENAI"
	cfg.LLM.Model = "gpt-test"
	cfg.LLM.System = "You extract trades."
	cfg.LLM.Endpoint = srv.URL
	cfg.Secrets.OpenAIAPIKey = "test-key"

	o, err := NewOpenAIOracle(cfg)
	require.NoError(t, err)

	got, err := o.Generate(context.Background(), "extract", types.GenerateOptions{MaxOutputTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, `{"symbol":"INFY"}`, got)
}

func TestMissingKey(t *testing.T) {
	_, err := NewOpenAIOracle(store.Default())
	assert.EqualError(t, err, "OPENAI_API_KEY missing")
}
