package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	DBMaxConns       int32
	Port             string
	IsProduction     bool
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	LoginRateLimit             string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Background jobs, standard 5-field cron expressions evaluated in UTC.
	DailySpendResetSchedule string
	BillPaymentSchedule     string
	JobLockTTL              time.Duration

	// CumulativeDailyLimit compares dailySpend+amount with the daily limit instead of the amount alone.
	CumulativeDailyLimit bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 20)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "banking-backoffice")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DAILY_SPEND_RESET_SCHEDULE", "55 19 * * *")
	viper.SetDefault("BILL_PAYMENT_SCHEDULE", "27 20 * * *")
	viper.SetDefault("JOB_LOCK_TTL", "10m")
	viper.SetDefault("LEDGER_CUMULATIVE_DAILY_LIMIT", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.ShutdownTimeout = parseDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
	cfg.CORSAllowOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RefreshTokenExpiryDuration = parseDuration("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.DailySpendResetSchedule = viper.GetString("DAILY_SPEND_RESET_SCHEDULE")
	cfg.BillPaymentSchedule = viper.GetString("BILL_PAYMENT_SCHEDULE")
	cfg.JobLockTTL = parseDuration("JOB_LOCK_TTL", 10*time.Minute)
	cfg.CumulativeDailyLimit = viper.GetBool("LEDGER_CUMULATIVE_DAILY_LIMIT")

	return cfg, nil
}

// parseDuration reads key as a Go duration, falling back to def with a warning when it is invalid.
func parseDuration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
