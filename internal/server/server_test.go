package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/pos-audit-be/internal/config"
	"github.com/hongminglow/pos-audit-be/internal/middleware"
	"github.com/hongminglow/pos-audit-be/internal/storage/sqlite/sqlitetest"
)

func testConfig() config.Config {
	return config.Config{
		Port:        "0",
		JWTSecret:   "server-test-secret",
		JWTIssuer:   "test",
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CORSOrigins: []string{"https://audit.example.com"},
	}
}

func TestHandlerWiresMiddlewareAndRoutes(t *testing.T) {
	store := sqlitetest.NewStore(t)
	sqlitetest.SeedSales(t, store)
	core, logs := observer.New(zapcore.InfoLevel)

	ts := httptest.NewServer(Handler(testConfig(), store, zap.New(core)))
	t.Cleanup(ts.Close)
	c := resty.New().SetBaseURL(ts.URL)

	resp, err := c.R().
		SetHeader("Origin", "https://audit.example.com").
		SetHeader(middleware.RequestIDHeader, "req-42").
		Get("/api/sales")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "https://audit.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-42", resp.Header().Get(middleware.RequestIDHeader))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/api/sales", entries[0].ContextMap()["path"])

	resp, err = c.R().
		SetHeader("Origin", "https://audit.example.com").
		SetHeader("Access-Control-Request-Method", "POST").
		Options("/api/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = c.R().Get("/api/unknown")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestNewUsesConfiguredAddress(t *testing.T) {
	store := sqlitetest.NewStore(t)
	cfg := testConfig()
	cfg.Port = "5055"

	srv := New(cfg, store, nil)
	assert.Equal(t, ":5055", srv.inner.Addr)
}
