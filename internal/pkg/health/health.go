package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/circuitbreaker"
	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/nats"
	"github.com/piresc/ticketing/internal/utils"
)

// ErrNATSDisconnected is reported when the NATS connection is down
var ErrNATSDisconnected = errors.New("nats not connected")

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a plain function to HealthChecker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f(ctx)
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// PostgresHealthChecker checks PostgreSQL connection health
type PostgresHealthChecker struct {
	client *database.PostgresClient
}

// NewPostgresHealthChecker creates a new PostgreSQL health checker
func NewPostgresHealthChecker(client *database.PostgresClient) *PostgresHealthChecker {
	return &PostgresHealthChecker{client: client}
}

// CheckHealth pings the database
func (p *PostgresHealthChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.GetDB().PingContext(ctx)
}

// RedisHealthChecker checks Redis connection health
type RedisHealthChecker struct {
	client *database.RedisClient
}

// NewRedisHealthChecker creates a new Redis health checker
func NewRedisHealthChecker(client *database.RedisClient) *RedisHealthChecker {
	return &RedisHealthChecker{client: client}
}

// CheckHealth pings Redis
func (r *RedisHealthChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Client.Ping(ctx).Err()
}

// NATSHealthChecker checks NATS connection health
type NATSHealthChecker struct {
	client *nats.Client
}

// NewNATSHealthChecker creates a new NATS health checker
func NewNATSHealthChecker(client *nats.Client) *NATSHealthChecker {
	return &NATSHealthChecker{client: client}
}

// CheckHealth reports whether the NATS connection is up
func (n *NATSHealthChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil {
		return nil
	}
	if !n.client.IsConnected() {
		return ErrNATSDisconnected
	}
	return nil
}

// CircuitBreakerHealthChecker reports an outbound dependency as unhealthy
// while any of its breakers is open
type CircuitBreakerHealthChecker struct {
	stats func() map[string]circuitbreaker.Stats
}

// NewCircuitBreakerHealthChecker creates a checker over a breaker stats source
func NewCircuitBreakerHealthChecker(stats func() map[string]circuitbreaker.Stats) *CircuitBreakerHealthChecker {
	return &CircuitBreakerHealthChecker{stats: stats}
}

// CheckHealth fails on the first open breaker, by name
func (b *CircuitBreakerHealthChecker) CheckHealth(ctx context.Context) error {
	stats := b.stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if stats[name].State == circuitbreaker.StateOpen.String() {
			return fmt.Errorf("circuit breaker %s is open", name)
		}
	}
	return nil
}

// HealthService manages health checks for multiple dependencies
type HealthService struct {
	checkers map[string]HealthChecker
	logger   *logger.ZapLogger
}

// NewHealthService creates a new health service
func NewHealthService(zapLogger *logger.ZapLogger) *HealthService {
	if zapLogger == nil {
		zapLogger = logger.NewNopLogger()
	}
	return &HealthService{
		checkers: make(map[string]HealthChecker),
		logger:   zapLogger,
	}
}

// AddChecker registers a health checker for a dependency
func (h *HealthService) AddChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CheckAllHealth performs health checks on all registered dependencies
func (h *HealthService) CheckAllHealth(ctx context.Context) HealthResponse {
	response := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo),
	}

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checkers[name].CheckHealth(ctx); err != nil {
			h.logger.Error("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))

			response.Dependencies[name] = DependencyInfo{
				Status: "unhealthy",
				Error:  err.Error(),
			}
			response.Status = "unhealthy"
			continue
		}
		response.Dependencies[name] = DependencyInfo{Status: "healthy"}
	}

	return response
}

func (r HealthResponse) unhealthy() []string {
	var names []string
	for name, dep := range r.Dependencies {
		if dep.Status != "healthy" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// RegisterHealthEndpoints registers /ping and the /health group
func RegisterHealthEndpoints(e *echo.Echo, serviceName, version string, healthService *HealthService) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, BuildInfo{
			Version:     version,
			ServiceName: serviceName,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now(),
		})
	})

	healthGroup := e.Group("/health")

	// Basic health check (for load balancers)
	healthGroup.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now(),
		})
	})

	healthGroup.GET("/detailed", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		response := healthService.CheckAllHealth(ctx)
		response.Service = serviceName
		response.Version = version

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		return c.JSON(statusCode, response)
	})

	// Readiness probe (for Kubernetes)
	healthGroup.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		response := healthService.CheckAllHealth(ctx)
		response.Service = serviceName

		if response.Status == "unhealthy" {
			return utils.ServiceUnavailableResponse(c, "unavailable: "+strings.Join(response.unhealthy(), ", "))
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ready",
			"service": serviceName,
		})
	})

	// Liveness probe (for Kubernetes)
	healthGroup.GET("/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "alive",
			"service": serviceName,
		})
	})
}
