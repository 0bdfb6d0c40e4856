package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Mpesa    MpesaConfig
	Email    EmailConfig
	Payment  PaymentConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret    string
	Issuer    string
	AdminRole string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}

// MpesaConfig contains settings for inbound M-Pesa callbacks
type MpesaConfig struct {
	// CallbackSecret is the shared value embedded in the callback URL path
	CallbackSecret string
}

// EmailConfig contains the transactional email API settings
type EmailConfig struct {
	BaseURL string
	APIKey  string
	From    string
	Timeout time.Duration
}

// PaymentConfig contains reconciliation behaviour settings
type PaymentConfig struct {
	// TicketedListingTypes lists listing types whose full payment issues tickets
	TicketedListingTypes []string
	TxMaxRetries         int
	StatusCacheTTL       time.Duration
	SideEffectTimeout    time.Duration
	// StatusRateLimit caps status polls per client IP per minute
	StatusRateLimit int
}
