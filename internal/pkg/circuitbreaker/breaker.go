package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/ticketing/internal/pkg/logger"
)

// Errors returned instead of calling a protected dependency
var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config holds circuit breaker configuration
type Config struct {
	Name             string
	MaxRequests      uint32        // Max requests allowed in half-open state
	Interval         time.Duration // Interval to clear counters in closed state
	Timeout          time.Duration // Open duration before probing again
	FailureThreshold uint32        // Consecutive failures that open the breaker
	SuccessThreshold uint32        // Consecutive half-open successes that close it
	IsFailure        func(err error) bool
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 1,
		IsFailure: func(err error) bool {
			return err != nil
		},
	}
}

// Counts holds the counters for circuit breaker
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// CircuitBreaker stops calling a dependency after repeated failures and
// probes it again once Timeout has passed
type CircuitBreaker struct {
	config Config
	logger *logger.ZapLogger
	now    func() time.Time

	mutex  sync.Mutex
	state  State
	counts Counts
	expiry time.Time
}

// New creates a new circuit breaker
func New(config Config, l *logger.ZapLogger) *CircuitBreaker {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}
	cb := &CircuitBreaker{
		config: config,
		logger: l,
		now:    time.Now,
		state:  StateClosed,
	}
	cb.expiry = cb.now().Add(config.Interval)
	return cb
}

// Execute executes the given function with circuit breaker protection
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	now := cb.now()

	switch cb.state {
	case StateClosed:
		if cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = now.Add(cb.config.Interval)
		}
	case StateOpen:
		if !cb.expiry.Before(now) {
			return ErrCircuitBreakerOpen
		}
		cb.setState(StateHalfOpen)
		cb.counts = Counts{}
	case StateHalfOpen:
		if cb.counts.Requests >= cb.config.MaxRequests {
			return ErrTooManyRequests
		}
	}

	cb.counts.Requests++
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if !cb.config.IsFailure(err) {
		cb.counts.TotalSuccesses++
		cb.counts.ConsecutiveSuccesses++
		cb.counts.ConsecutiveFailures = 0

		if cb.state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.config.SuccessThreshold {
			cb.setState(StateClosed)
			cb.expiry = cb.now().Add(cb.config.Interval)
		}
		return
	}

	cb.counts.TotalFailures++
	cb.counts.ConsecutiveFailures++
	cb.counts.ConsecutiveSuccesses = 0

	if cb.state == StateHalfOpen ||
		(cb.state == StateClosed && cb.counts.ConsecutiveFailures >= cb.config.FailureThreshold) {
		cb.setState(StateOpen)
		cb.expiry = cb.now().Add(cb.config.Timeout)
	}
}

// setState must be called with the mutex held
func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state

	cb.logger.Warn("Circuit breaker state changed",
		logger.String("name", cb.config.Name),
		logger.String("from", prev.String()),
		logger.String("to", state.String()),
		logger.Uint32("total_failures", cb.counts.TotalFailures),
		logger.Uint32("consecutive_failures", cb.counts.ConsecutiveFailures))
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Counts returns the current counts
func (cb *CircuitBreaker) Counts() Counts {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.counts
}

// Manager keeps one circuit breaker per downstream name
type Manager struct {
	breakers map[string]*CircuitBreaker
	mutex    sync.Mutex
	logger   *logger.ZapLogger
}

// NewManager creates a new circuit breaker manager
func NewManager(l *logger.ZapLogger) *Manager {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Manager{
		breakers: make(map[string]*CircuitBreaker),
		logger:   l,
	}
}

// GetOrCreate gets an existing circuit breaker or creates a new one
func (m *Manager) GetOrCreate(name string, config Config) *CircuitBreaker {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if cb, exists := m.breakers[name]; exists {
		return cb
	}

	config.Name = name
	cb := New(config, m.logger)
	m.breakers[name] = cb

	m.logger.Info("Created new circuit breaker",
		logger.String("name", name),
		logger.Uint32("failure_threshold", config.FailureThreshold),
		logger.Duration("timeout", config.Timeout))

	return cb
}

// Execute executes a function with the named circuit breaker
func (m *Manager) Execute(ctx context.Context, name string, fn func(context.Context) error) error {
	return m.GetOrCreate(name, DefaultConfig(name)).Execute(ctx, fn)
}

// Stats holds statistics for a circuit breaker
type Stats struct {
	State               string `json:"state"`
	TotalRequests       uint32 `json:"total_requests"`
	TotalFailures       uint32 `json:"total_failures"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// GetStats returns statistics for all circuit breakers
func (m *Manager) GetStats() map[string]Stats {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stats := make(map[string]Stats, len(m.breakers))
	for name, cb := range m.breakers {
		counts := cb.Counts()
		stats[name] = Stats{
			State:               cb.State().String(),
			TotalRequests:       counts.Requests,
			TotalFailures:       counts.TotalFailures,
			ConsecutiveFailures: counts.ConsecutiveFailures,
		}
	}
	return stats
}
