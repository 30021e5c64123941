package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/storekit/catalog-search/pkg/config"
	"github.com/storekit/catalog-search/pkg/database"
)

// Config holds all configuration for the catalog-search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_SEARCH_HTTP_PORT" envDefault:"8010"`

	// Ambient defaults for queries that carry no explicit overrides.
	DefaultLanguageID int64  `env:"DEFAULT_LANGUAGE_ID" envDefault:"1"`
	DefaultLocale     string `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	// Display precision floor applied on top of each currency's digit count.
	MinDisplayDigits int `env:"MIN_DISPLAY_DIGITS" envDefault:"0"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"catalog_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"catalog"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis
	RedisHost        string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort        int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	CurrencyCacheTTL time.Duration `env:"CURRENCY_CACHE_TTL" envDefault:"10m"`

	// Elasticsearch
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"catalog_products"`

	// Search engine selection (elasticsearch or memory)
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`

	// Kafka
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"catalog-search"`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog-search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DefaultLanguageID < 1 {
		return fmt.Errorf("invalid default language id: %d", c.DefaultLanguageID)
	}
	if c.MinDisplayDigits < 0 {
		return fmt.Errorf("invalid minimum display digits: %d", c.MinDisplayDigits)
	}
	switch c.SearchEngine {
	case "elasticsearch", "memory":
	default:
		return fmt.Errorf("invalid search engine: %q", c.SearchEngine)
	}
	return nil
}

// Postgres returns the PostgreSQL pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return pg
}

// Redis returns the Redis client configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
