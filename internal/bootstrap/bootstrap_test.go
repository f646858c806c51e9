package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := WithCORS(next, []string{"http://localhost:5173"})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/records", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestNewServer(t *testing.T) {
	srv := newServer(http.NotFoundHandler(), ServerConfig{Port: "3000", ReadTimeout: 5 * time.Second})

	assert.Equal(t, ":3000", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
}

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))

	l.Log(context.Background(), AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "SERVER_SHUTDOWN", entries[0].ContextMap()["action"])
	}
}
