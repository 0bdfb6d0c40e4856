package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"

	"github.com/piresc/ticketing/internal/pkg/config"
	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/health"
	httpclient "github.com/piresc/ticketing/internal/pkg/http"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/middleware"
	"github.com/piresc/ticketing/internal/pkg/nats"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/internal/pkg/server"
	"github.com/piresc/ticketing/services/payment/gateway"
	"github.com/piresc/ticketing/services/payment/handler"
	"github.com/piresc/ticketing/services/payment/repository"
	"github.com/piresc/ticketing/services/payment/usecase"
)

func main() {
	appName := "payment-service"
	configPath := "config/payment.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	if configs.Mpesa.CallbackSecret == "" {
		logger.Warn("MPESA_CALLBACK_SECRET is empty, every callback will be rejected")
	}

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	logger.Info("NATS client initialized",
		logger.String("url", configs.NATS.URL),
		logger.Bool("connected", natsClient.IsConnected()))

	// Outbound email API client with retry and circuit breaker
	emailClient := httpclient.NewEnhancedClient(zapLogger, httpclient.ClientConfig{
		Timeout:    configs.Email.Timeout,
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
	})

	// Initialize repository
	paymentRepo := repository.NewPaymentRepository(configs, postgresClient.GetDB(), zapLogger)
	statusCache := repository.NewStatusCache(redisClient)

	// Initialize gateway
	paymentGW := gateway.NewPaymentGW(natsClient, emailClient, configs.Email)

	// Initialize usecase
	paymentUC := usecase.NewPaymentUC(configs, paymentRepo, statusCache, paymentGW, usecase.NewTicketIssuer(), zapLogger)

	// Initialize handlers
	paymentHandler := handler.NewHandler(paymentUC, configs, redisClient.GetClient())

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Health endpoints
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	healthService.AddChecker("email", health.NewCircuitBreakerHealthChecker(emailClient.GetCircuitBreakerStats))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	paymentHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)

	// Settled payments still owe their emails and events, so drain those
	// before the clients they use are closed.
	srv.OnShutdown("side effects", server.WaitHook(paymentUC.Wait))
	srv.OnShutdown("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	srv.OnShutdown("redis", server.CloseHook(redisClient.Close))
	srv.OnShutdown("postgres", server.CloseHook(postgresClient.Close))
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server exited with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
