package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/spf13/viper"
)

func InitConfig(configPath string) *models.Config {
	v := newViper()
	if v.GetString("APP_ENV") == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "payment-service")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NATS_URL", "nats://localhost:4222")

	v.SetDefault("JWT_ADMIN_ROLE", "admin")

	v.SetDefault("EMAIL_TIMEOUT", "10s")

	v.SetDefault("PAYMENT_TICKETED_LISTING_TYPES", "event,tour")
	v.SetDefault("PAYMENT_TX_MAX_RETRIES", 3)
	v.SetDefault("PAYMENT_STATUS_CACHE_TTL", "24h")
	v.SetDefault("PAYMENT_SIDE_EFFECT_TIMEOUT", "30s")
	v.SetDefault("PAYMENT_STATUS_RATE_LIMIT", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "logs/payment.log")
	v.SetDefault("LOG_TYPE", "file")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NATS config
	configs.NATS.URL = v.GetString("NATS_URL")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")
	configs.JWT.AdminRole = v.GetString("JWT_ADMIN_ROLE")

	// M-Pesa callback config
	configs.Mpesa.CallbackSecret = v.GetString("MPESA_CALLBACK_SECRET")

	// Email API config
	configs.Email.BaseURL = v.GetString("EMAIL_API_URL")
	configs.Email.APIKey = v.GetString("EMAIL_API_KEY")
	configs.Email.From = v.GetString("EMAIL_FROM")
	configs.Email.Timeout = v.GetDuration("EMAIL_TIMEOUT")

	// Payment reconciliation config
	configs.Payment.TicketedListingTypes = splitList(v.GetString("PAYMENT_TICKETED_LISTING_TYPES"))
	configs.Payment.TxMaxRetries = v.GetInt("PAYMENT_TX_MAX_RETRIES")
	configs.Payment.StatusCacheTTL = v.GetDuration("PAYMENT_STATUS_CACHE_TTL")
	configs.Payment.SideEffectTimeout = v.GetDuration("PAYMENT_SIDE_EFFECT_TIMEOUT")
	configs.Payment.StatusRateLimit = v.GetInt("PAYMENT_STATUS_RATE_LIMIT")

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LogsEnabled = v.GetBool("NEW_RELIC_LOGS_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")
	configs.Logger.Type = v.GetString("LOG_TYPE")

	return configs
}

// splitList parses a comma separated env value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
