package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every process-level knob. It is built once in main and passed
// down explicitly; nothing else reads the environment.
type Config struct {
	Port     string `envconfig:"PORT" default:"5000"`
	DBEngine string `envconfig:"DB_ENGINE" default:"sqlite"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5433"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"tahoe_bear_jerky"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:""`

	SQLitePath string `envconfig:"SQLITE_DB_PATH" default:"data/tahoe_bear_jerky.db"`

	// Pricing policy. Stored as strings so they parse into exact decimals.
	TaxRate               string `envconfig:"TAX_RATE" default:"0.0775"`
	FreeShippingThreshold string `envconfig:"FREE_SHIPPING_THRESHOLD" default:"50.00"`
	FlatShippingCost      string `envconfig:"FLAT_SHIPPING_COST" default:"5.99"`

	ServiceName  string `envconfig:"SERVICE_NAME" default:"storefront-api"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
