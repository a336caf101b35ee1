package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Timezone used when evaluating link expiry. Fixed per deployment so
	// expiry decisions do not drift with the host's local time.
	TimeZone string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Media provider (Cloudinary)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Email (welcome emails; log mode in development)
	EmailFrom    string
	ResendAPIKey string

	// Payment
	StripeSecretKey         string
	StripeWebhookSecret     string
	StripePriceIDPremium    string
	StripePriceIDEnterprise string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName:  envString("APP_NAME", "imgvault"),
		AppEnv:   envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:   envRequired("APP_URL"), // Required: base URL for expiring-link resolution URLs
		Port:     envString("PORT", "8090"),
		TimeZone: envString("TIME_ZONE", "UTC"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/imgvault.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		CloudinaryCloudName: envRequired("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    envRequired("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: envRequired("CLOUDINARY_API_SECRET"),

		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		StripeSecretKey:         envString("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:     envString("STRIPE_WEBHOOK_SECRET", ""),
		StripePriceIDPremium:    envString("STRIPE_PRICE_ID_PREMIUM", ""),
		StripePriceIDEnterprise: envString("STRIPE_PRICE_ID_ENTERPRISE", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows some services (like email) to use fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.StripeSecretKey != "" && cfg.StripeWebhookSecret == "" {
		slog.Error("STRIPE_SECRET_KEY is set but STRIPE_WEBHOOK_SECRET is missing")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves the configured timezone. Falls back to UTC if the zone
// name is unknown so expiry checks stay deterministic.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "time_zone", c.TimeZone)
		return time.UTC
	}
	return loc
}
