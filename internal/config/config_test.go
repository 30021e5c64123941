package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, int64(1), cfg.DefaultLanguageID)
	assert.Equal(t, "en-US", cfg.DefaultLocale)
	assert.Equal(t, 0, cfg.MinDisplayDigits)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "catalog_products", cfg.ElasticsearchIndex)
	assert.Equal(t, "elasticsearch", cfg.SearchEngine)
	assert.Equal(t, 10*time.Minute, cfg.CurrencyCacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "memory")
	t.Setenv("DEFAULT_LANGUAGE_ID", "2")
	t.Setenv("MIN_DISPLAY_DIGITS", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.SearchEngine)
	assert.Equal(t, int64(2), cfg.DefaultLanguageID)
	assert.Equal(t, 2, cfg.MinDisplayDigits)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("CATALOG_SEARCH_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSearchEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "solr")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search engine")
}

func TestLoad_InvalidLanguageID(t *testing.T) {
	t.Setenv("DEFAULT_LANGUAGE_ID", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default language id")
}

func TestConfig_Postgres(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 5433, pg.Port)
	assert.Contains(t, pg.DSN(), "db.internal:5433")
}
