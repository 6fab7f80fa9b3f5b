package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/types"
)

func newTestOracle(t *testing.T, h http.HandlerFunc) *GeminiOracle {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := store.Default()
	cfg.LLM.Endpoint = srv.URL
	cfg.Secrets.GeminiAPIKey = "test-key"

	o, err := NewGeminiOracle(cfg)
	require.NoError(t, err)
	return o
}

func TestGenerate(t *testing.T) {
	o := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "extract this", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 0.0, req.GenerationConfig.Temperature)
		assert.Equal(t, 1000, req.GenerationConfig.MaxOutputTokens)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"symbol\":"},{"text":"\"TCS\"}"}]}}]}`))
	})

	got, err := o.Generate(context.Background(), "extract this", types.GenerateOptions{MaxOutputTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, `{"symbol":"TCS"}`, got)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http error", http.StatusForbidden, `{"error":{"message":"bad key"}}`, "HTTP 403"},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "SAFETY"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "no candidates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := o.Generate(context.Background(), "x", types.GenerateOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMissingKey(t *testing.T) {
	_, err := NewGeminiOracle(store.Default())
	assert.EqualError(t, err, "GEMINI_API_KEY missing")
}
