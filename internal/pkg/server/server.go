package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
)

const defaultShutdownTimeout = 30 * time.Second

// GracefulServer runs an Echo server until its context ends, then stops
// accepting requests and runs the registered shutdown hooks in order.
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	addr            string
	shutdownTimeout time.Duration
	hooks           *ShutdownManager
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, config models.ServerConfig) *GracefulServer {
	if zapLogger == nil {
		zapLogger = logger.NewNopLogger()
	}
	timeout := time.Duration(config.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		addr:            fmt.Sprintf("%s:%d", config.Host, config.Port),
		shutdownTimeout: timeout,
		hooks:           NewShutdownManager(zapLogger),
	}
}

// OnShutdown registers a hook that runs once the HTTP server has drained
func (s *GracefulServer) OnShutdown(name string, fn func(context.Context) error) {
	s.hooks.Register(name, fn)
}

// Run serves HTTP until ctx is cancelled or the listener fails
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case err := <-errCh:
		serveErr = fmt.Errorf("http server failed: %w", err)
		s.logger.Error("HTTP server stopped unexpectedly", logger.Err(err))
	case <-ctx.Done():
		s.logger.Info("Shutdown requested", logger.Err(context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		serveErr = errors.Join(serveErr, err)
	}

	if err := s.hooks.Shutdown(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, err)
	}

	s.logger.Info("Server shutdown completed")
	return serveErr
}

type shutdownHook struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs cleanup hooks in registration order
type ShutdownManager struct {
	logger *logger.ZapLogger
	mu     sync.Mutex
	hooks  []shutdownHook
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	if zapLogger == nil {
		zapLogger = logger.NewNopLogger()
	}
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup hook. Nil hooks are ignored.
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.hooks = append(sm.hooks, shutdownHook{name: name, fn: fn})
}

// Shutdown runs every hook even when earlier ones fail and returns the joined errors
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	hooks := make([]shutdownHook, len(sm.hooks))
	copy(hooks, sm.hooks)
	sm.mu.Unlock()

	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(hooks)))

	var errs []error
	for _, hook := range hooks {
		if err := hook.fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", hook.name),
				logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}

	sm.logger.Info("All components shutdown completed")
	return errors.Join(errs...)
}

// WaitHook adapts a blocking wait such as a WaitGroup drain into a hook
// bounded by the shutdown deadline.
func WaitHook(wait func()) func(context.Context) error {
	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() {
			wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// CloseHook adapts a Close method into a hook
func CloseHook(closeFn func() error) func(context.Context) error {
	return func(context.Context) error {
		return closeFn()
	}
}
