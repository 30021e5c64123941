package searchindex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker guarding the search index.
type BreakerConfig struct {
	Name string
	// MaxRequests allowed through in the half-open state.
	MaxRequests uint32
	// Interval clears failure counts in the closed state; 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// FailureRatio trips the breaker once MinRequests have been observed.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns the defaults used in production wiring.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// BreakerIndex wraps a ProductSearchIndex with a circuit breaker so a
// misbehaving search cluster fails fast instead of queueing requests.
type BreakerIndex struct {
	next    ProductSearchIndex
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerIndex wraps next with a circuit breaker.
func NewBreakerIndex(next ProductSearchIndex, cfg BreakerConfig, logger *slog.Logger) *BreakerIndex {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("search index breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &BreakerIndex{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// SearchByName implements ProductSearchIndex.
func (b *BreakerIndex) SearchByName(ctx context.Context, languageID int64, phrase string, limit int) ([]string, error) {
	out, err := b.breaker.Execute(func() (any, error) {
		return b.next.SearchByName(ctx, languageID, phrase, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return out.([]string), nil
}

// Index implements ProductSearchIndex.
func (b *BreakerIndex) Index(ctx context.Context, doc *ProductDocument) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.Index(ctx, doc)
	})
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	return nil
}

// Delete implements ProductSearchIndex.
func (b *BreakerIndex) Delete(ctx context.Context, productID string) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.Delete(ctx, productID)
	})
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	return nil
}
