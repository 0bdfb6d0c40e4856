package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/circuitbreaker"
	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthTest(t *testing.T, checkers map[string]HealthChecker) *echo.Echo {
	hs := NewHealthService(logger.NewNopLogger())
	for name, checker := range checkers {
		hs.AddChecker(name, checker)
	}

	e := echo.New()
	RegisterHealthEndpoints(e, "payment-service", "1.2.3", hs)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPostgresHealthChecker(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	client := database.NewPostgresClientFromDB(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectPing()
	assert.NoError(t, NewPostgresHealthChecker(client).CheckHealth(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, NewPostgresHealthChecker(client).CheckHealth(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, NewPostgresHealthChecker(nil).CheckHealth(context.Background()))
}

func TestRedisHealthChecker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()

	assert.NoError(t, NewRedisHealthChecker(client).CheckHealth(context.Background()))

	mr.Close()
	assert.Error(t, NewRedisHealthChecker(client).CheckHealth(context.Background()))
	assert.NoError(t, NewRedisHealthChecker(nil).CheckHealth(context.Background()))
}

func TestNATSHealthChecker_NilClient(t *testing.T) {
	assert.NoError(t, NewNATSHealthChecker(nil).CheckHealth(context.Background()))
}

func TestCircuitBreakerHealthChecker(t *testing.T) {
	stats := map[string]circuitbreaker.Stats{
		"api.mailer.test": {State: circuitbreaker.StateClosed.String()},
	}
	checker := NewCircuitBreakerHealthChecker(func() map[string]circuitbreaker.Stats { return stats })

	assert.NoError(t, checker.CheckHealth(context.Background()))

	stats["api.mailer.test"] = circuitbreaker.Stats{State: circuitbreaker.StateOpen.String(), ConsecutiveFailures: 5}
	err := checker.CheckHealth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.mailer.test")

	empty := NewCircuitBreakerHealthChecker(func() map[string]circuitbreaker.Stats { return nil })
	assert.NoError(t, empty.CheckHealth(context.Background()))
}

func TestHealthEndpoints(t *testing.T) {
	healthy := CheckerFunc(func(ctx context.Context) error { return nil })
	broken := CheckerFunc(func(ctx context.Context) error { return errors.New("redis down") })

	testCases := []struct {
		name           string
		checkers       map[string]HealthChecker
		path           string
		expectedStatus int
		assertFunc     func(t *testing.T, body []byte)
	}{
		{
			name:           "basic health",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "liveness ignores dependencies",
			checkers:       map[string]HealthChecker{"redis": broken},
			path:           "/health/live",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "detailed all healthy",
			checkers:       map[string]HealthChecker{"postgres": healthy, "redis": healthy},
			path:           "/health/detailed",
			expectedStatus: http.StatusOK,
			assertFunc: func(t *testing.T, body []byte) {
				var resp HealthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "healthy", resp.Status)
				assert.Equal(t, "payment-service", resp.Service)
				assert.Equal(t, "1.2.3", resp.Version)
				assert.Len(t, resp.Dependencies, 2)
			},
		},
		{
			name:           "detailed with broken dependency",
			checkers:       map[string]HealthChecker{"postgres": healthy, "redis": broken},
			path:           "/health/detailed",
			expectedStatus: http.StatusServiceUnavailable,
			assertFunc: func(t *testing.T, body []byte) {
				var resp HealthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "unhealthy", resp.Status)
				assert.Equal(t, "healthy", resp.Dependencies["postgres"].Status)
				assert.Equal(t, "redis down", resp.Dependencies["redis"].Error)
			},
		},
		{
			name:           "ready",
			checkers:       map[string]HealthChecker{"postgres": healthy},
			path:           "/health/ready",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not ready",
			checkers:       map[string]HealthChecker{"redis": broken, "postgres": healthy, "nats": broken},
			path:           "/health/ready",
			expectedStatus: http.StatusServiceUnavailable,
			assertFunc: func(t *testing.T, body []byte) {
				var resp utils.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.False(t, resp.Success)
				assert.Equal(t, "unavailable: nats, redis", resp.Error)
			},
		},
		{
			name:           "ping",
			path:           "/ping",
			expectedStatus: http.StatusOK,
			assertFunc: func(t *testing.T, body []byte) {
				var info BuildInfo
				require.NoError(t, json.Unmarshal(body, &info))
				assert.Equal(t, "payment-service", info.ServiceName)
				assert.Equal(t, "1.2.3", info.Version)
				assert.NotEmpty(t, info.GoVersion)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := setupHealthTest(t, tc.checkers)
			rec := get(e, tc.path)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.assertFunc != nil {
				tc.assertFunc(t, rec.Body.Bytes())
			}
		})
	}
}
