package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// MinIOConfig holds object storage settings for MinIO / S3.
// PublicBaseURL is the prefix under which stored images are reachable by browsers.
type MinIOConfig struct {
	Endpoint      string `env:"MINIO_ENDPOINT"`
	AccessKey     string `env:"MINIO_ACCESS_KEY"`
	SecretKey     string `env:"MINIO_SECRET_KEY"`
	Bucket        string `env:"MINIO_BUCKET"`
	UseSSL        bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	PublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`
}

// RedisConfig holds the cart store connection settings.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"storefront"`
	TokenTTL  time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// CartConfig controls the session cart.
type CartConfig struct {
	CookieName   string        `env:"CART_COOKIE_NAME" envDefault:"cart_session"`
	TTL          time.Duration `env:"CART_TTL" envDefault:"168h"`
	SecureCookie bool          `env:"CART_SECURE_COOKIE" envDefault:"false"`
}

// InvoiceConfig controls invoice totals.
type InvoiceConfig struct {
	TaxPercent float64 `env:"INVOICE_TAX_PERCENT" envDefault:"0"`
}

// WebConfig controls the HTML pages. Banners are object keys shown on the home page.
type WebConfig struct {
	SiteName  string        `env:"SITE_NAME" envDefault:"Storefront"`
	Banners   []string      `env:"HOME_BANNERS" envSeparator:","`
	BannerTTL time.Duration `env:"HOME_BANNER_URL_TTL" envDefault:"1h"`
}

// TracingConfig mirrors the standard OTEL_* variables used to set up trace export.
type TracingConfig struct {
	Disabled       bool   `env:"OTEL_SDK_DISABLED" envDefault:"false"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"storefront"`
	Protocol       string `env:"OTEL_EXPORTER_OTLP_PROTOCOL" envDefault:"grpc"`
	TracesEndpoint string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Sampler        string `env:"OTEL_TRACES_SAMPLER" envDefault:"parentbased_traceidratio"`
	SamplerArg     string `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port     string `env:"PORT" envDefault:"8080"`
	TimeZone string `env:"APP_TZ" envDefault:"UTC"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Cart     CartConfig
	Invoice  InvoiceConfig
	Web      WebConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Invoice.TaxPercent < 0 || cfg.Invoice.TaxPercent > 100 {
		return nil, fmt.Errorf("INVOICE_TAX_PERCENT must be between 0 and 100, got %v", cfg.Invoice.TaxPercent)
	}
	return &cfg, nil
}

// Location resolves the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
