// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection. Revision history is disabled when DBHost is empty.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). Drafts and response caching are
	// disabled when ValkeyHost is empty.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Shopify Admin API
	ShopifyShop       string // myshop.myshopify.com
	ShopifyToken      string // offline Admin API access token
	ShopifyAPIVersion string
	ShopifyBlogID     string // blog new articles go to; empty means the shop's first

	// S3-compatible object storage for uploaded images. Uploads fall back
	// to data: URLs when S3Endpoint is empty.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Editor behaviour
	DraftTTL     time.Duration
	SanitizeText bool
	RevisionKeep int

	// PublicRateLimit is how many storefront requests a client may make per minute.
	PublicRateLimit int

	// OpenTelemetry tracing
	OTelEnabled     bool
	OTelEndpoint    string
	OTelServiceName string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed or if critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "blogbuilder"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "blogbuilder"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		ShopifyShop:       os.Getenv("SHOPIFY_SHOP"),
		ShopifyToken:      os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		ShopifyAPIVersion: os.Getenv("SHOPIFY_API_VERSION"),
		ShopifyBlogID:     os.Getenv("SHOPIFY_BLOG_ID"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "blogbuilder-public"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		OTelEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelServiceName: envOrDefault("OTEL_SERVICE_NAME", "blogbuilder"),
	}

	var errs []error
	var err error
	if cfg.DraftTTL, err = envDuration("DRAFT_TTL", 24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.SanitizeText, err = envBool("SANITIZE_TEXT", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.RevisionKeep, err = envInt("REVISION_KEEP", 50); err != nil {
		errs = append(errs, err)
	}
	if cfg.PublicRateLimit, err = envInt("PUBLIC_RATE_LIMIT", 120); err != nil {
		errs = append(errs, err)
	}
	if cfg.OTelEnabled, err = envBool("OTEL_ENABLED", false); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cfg.Env == "production" {
		if cfg.ShopifyShop == "" || cfg.ShopifyToken == "" {
			return nil, fmt.Errorf("SHOPIFY_SHOP and SHOPIFY_ACCESS_TOKEN must be set in production")
		}
		if cfg.HistoryEnabled() && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HistoryEnabled reports whether a database is configured for revisions.
func (c *Config) HistoryEnabled() bool {
	return c.DBHost != ""
}

// ValkeyEnabled reports whether Valkey is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback, fmt.Errorf("%s: %q is not a non-negative integer", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("%s: %q is not a positive duration", key, v)
	}
	return d, nil
}
