package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/ticketing/internal/pkg/circuitbreaker"
	"github.com/piresc/ticketing/internal/pkg/logger"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/internal/pkg/retry"
)

// maxErrorBody caps how much of a failed response is kept in HTTPError
const maxErrorBody = 512

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed when sent again
func (e *HTTPError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ClientConfig configures EnhancedClient
type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
}

// EnhancedClient wraps http.Client with retry and circuit breaker functionality
type EnhancedClient struct {
	client         *http.Client
	retrier        *retry.Retrier
	circuitManager *circuitbreaker.Manager
	logger         *logger.ZapLogger
}

// NewEnhancedClient creates a new enhanced HTTP client
func NewEnhancedClient(log *logger.ZapLogger, config ClientConfig) *EnhancedClient {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxRetries = config.MaxRetries
	if config.BaseDelay > 0 {
		retryConfig.BaseDelay = config.BaseDelay
	}
	retryConfig.MaxDelay = 5 * time.Second
	retryConfig.RetryableFunc = isRetryable

	return &EnhancedClient{
		client:         &http.Client{Timeout: config.Timeout},
		retrier:        retry.New(retryConfig, log),
		circuitManager: circuitbreaker.NewManager(log),
		logger:         log,
	}
}

func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return retry.NetworkRetryableFunc()(err)
}

// countsAsFailure keeps client errors from opening the breaker
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return true
}

// Do sends the request built by newRequest with retry and circuit breaker
// protection and returns the response body of the first 2xx answer. A fresh
// request is built for every attempt so bodies can be resent.
func (c *EnhancedClient) Do(ctx context.Context, newRequest func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	probe, err := newRequest(ctx)
	if err != nil {
		return nil, err
	}
	serviceName := probe.URL.Host
	if serviceName == "" {
		serviceName = "unknown"
	}

	breakerConfig := circuitbreaker.DefaultConfig(serviceName)
	breakerConfig.IsFailure = countsAsFailure
	breaker := c.circuitManager.GetOrCreate(serviceName, breakerConfig)

	var body []byte
	err = breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			req, err := newRequest(ctx)
			if err != nil {
				return err
			}

			resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
				return c.client.Do(req)
			})
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				if len(data) > maxErrorBody {
					data = data[:maxErrorBody]
				}
				return &HTTPError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(data))}
			}

			body = data
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// PostJSON marshals payload and POSTs it to url with the given headers
func (c *EnhancedClient) PostJSON(ctx context.Context, url string, headers map[string]string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (c *EnhancedClient) GetCircuitBreakerStats() map[string]circuitbreaker.Stats {
	return c.circuitManager.GetStats()
}
