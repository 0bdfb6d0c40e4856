package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)
	return &ZapLogger{Logger: l, sugar: l.Sugar()}, logs
}

func TestZapEchoMiddleware_LogsRouteNotRawPath(t *testing.T) {
	zl, logs := newObservedLogger()

	e := echo.New()
	e.Use(ZapEchoMiddleware(zl))
	e.POST("/api/payments/mpesa/callback/:secret", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/callback/super-secret", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "Request processed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "/api/payments/mpesa/callback/:secret", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	for _, v := range fields {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "super-secret")
		}
	}
}

func TestZapEchoMiddleware_LevelsByStatus(t *testing.T) {
	testCases := []struct {
		name    string
		handler echo.HandlerFunc
		status  int
		level   zapcore.Level
		message string
	}{
		{
			name:    "client error",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusBadRequest) },
			status:  http.StatusBadRequest,
			level:   zapcore.WarnLevel,
			message: "Client error",
		},
		{
			name:    "returned error becomes server error",
			handler: func(c echo.Context) error { return errors.New("boom") },
			status:  http.StatusInternalServerError,
			level:   zapcore.ErrorLevel,
			message: "Server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			zl, logs := newObservedLogger()
			e := echo.New()
			e.Use(ZapEchoMiddleware(zl))
			e.GET("/x", tc.handler)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.status, rec.Code)
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tc.level, logs.All()[0].Level)
			assert.Equal(t, tc.message, logs.All()[0].Message)
		})
	}
}

func TestGlobalLogger(t *testing.T) {
	zl, logs := newObservedLogger()
	SetGlobalLogger(zl)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	Info("hello", String("k", "v"))
	Warn("careful")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
	assert.Same(t, zl, GetGlobalLogger())
}

func TestNewZapLogger_WritesFile(t *testing.T) {
	path := t.TempDir() + "/logs/payment.log"

	zl, err := NewZapLogger(ZapConfig{Level: "debug", FilePath: path, ServiceName: "payment-service"}, nil)
	require.NoError(t, err)

	zl.Info("file output")
	require.NoError(t, zl.Close())
	assert.FileExists(t, path)
}
