package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJournal struct{}

func (stubJournal) Start(ctx context.Context) string { return "welcome" }
func (stubJournal) Stats(ctx context.Context) string { return "stats" }
func (stubJournal) Daily(ctx context.Context) string { return "daily" }
func (stubJournal) HandleMessage(ctx context.Context, text string) string {
	return "logged: " + text
}

type chanHandler chan telego.Update

func (c chanHandler) HandleUpdate(ctx context.Context, update telego.Update) {
	c <- update
}

func newTestServer(updates UpdateHandler) http.Handler {
	return New(Config{
		Port:          0,
		WebhookPath:   "/webhook",
		WebhookSecret: "s3cret",
		Journal:       stubJournal{},
		Updates:       updates,
	}).Handler()
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndRoot(t *testing.T) {
	h := newTestServer(nil)

	rec := do(h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")

	rec = do(h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestWebhook(t *testing.T) {
	updates := make(chanHandler, 1)
	h := newTestServer(updates)
	payload := `{"update_id":1,"message":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"},"text":"/stats"}}`

	rec := do(h, http.MethodPost, "/webhook", payload, map[string]string{secretHeader: "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, http.MethodPost, "/webhook", "not json", map[string]string{secretHeader: "s3cret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/webhook", payload, map[string]string{secretHeader: "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	select {
	case u := <-updates:
		require.NotNil(t, u.Message)
		assert.Equal(t, int64(42), u.Message.Chat.ID)
		assert.Equal(t, "/stats", u.Message.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("update was not delivered")
	}
}

func TestWebhookNotRegisteredWithoutHandler(t *testing.T) {
	rec := do(newTestServer(nil), http.MethodPost, "/webhook", "{}", map[string]string{secretHeader: "s3cret"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessagesEndpoint(t *testing.T) {
	h := newTestServer(nil)

	rec := do(h, http.MethodPost, "/api/messages", `{"text":"Bought 10 TCS at 3500"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "logged: Bought 10 TCS at 3500", resp.Reply)

	rec = do(h, http.MethodPost, "/api/messages", `{"text":"/daily"}`, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "daily", resp.Reply)

	rec = do(h, http.MethodPost, "/api/messages", `{"text":""}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(h, http.MethodPost, "/api/messages", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
