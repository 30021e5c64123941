// Package rediscache decorates the catalog store with Redis-backed caching
// for hot lookups. Currency rows change rarely and are read on every search
// call, so they are the first candidate.
package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
)

const currencyKeyPrefix = "currency:"

// CurrencyCache is a read-through cache around a CatalogStore's currency
// resolution. All other CatalogStore methods pass through unchanged. Cache
// failures degrade to the underlying store; they are logged, never surfaced.
type CurrencyCache struct {
	repository.CatalogStore

	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewCurrencyCache wraps a catalog store with currency caching.
func NewCurrencyCache(store repository.CatalogStore, client *redis.Client, ttl time.Duration, log *slog.Logger) *CurrencyCache {
	return &CurrencyCache{
		CatalogStore: store,
		client:       client,
		ttl:          ttl,
		log:          log,
	}
}

// ResolveCurrency serves the currency from Redis when present, falling back
// to the underlying store and populating the cache on a miss. Resolution
// failures, CurrencyNotFound included, are never cached.
func (c *CurrencyCache) ResolveCurrency(ctx context.Context, isoCode string) (domain.Currency, error) {
	key := currencyKeyPrefix + isoCode

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cur domain.Currency
		if err := json.Unmarshal(data, &cur); err == nil {
			return cur, nil
		}
		c.log.Warn("dropping undecodable cached currency", slog.String("key", key))
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.log.Warn("delete cached currency", slog.String("key", key), slog.String("error", err.Error()))
		}
	} else if err != redis.Nil {
		c.log.Warn("currency cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	cur, err := c.CatalogStore.ResolveCurrency(ctx, isoCode)
	if err != nil {
		return domain.Currency{}, err
	}

	if data, err := json.Marshal(cur); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("currency cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return cur, nil
}
