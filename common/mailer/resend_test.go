package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickengine/publisher/common/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "text")
}

func TestResendSend(t *testing.T) {
	var got sendRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	m := NewResend("test-key", "Publisher <noreply@example.com>", testLogger())
	m.baseURL = srv.URL

	err := m.Send(context.Background(), "dev@example.com", "Game approved", "<p>done</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "Publisher <noreply@example.com>", got.From)
	assert.Equal(t, "dev@example.com", got.To)
	assert.Equal(t, "Game approved", got.Subject)
	assert.Equal(t, "<p>done</p>", got.HTML)
}

func TestResendSendFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewResend("bad-key", "noreply@example.com", testLogger())
	m.baseURL = srv.URL

	err := m.Send(context.Background(), "dev@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestNopSend(t *testing.T) {
	m := NewNop(testLogger())
	require.NoError(t, m.Send(context.Background(), "dev@example.com", "subject", "body"))
}
