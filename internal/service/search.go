package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/storekit/catalog-search/pkg/logger"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/execctx"
	"github.com/storekit/catalog-search/internal/pricing"
	"github.com/storekit/catalog-search/internal/repository"
	"github.com/storekit/catalog-search/internal/searchindex"
)

// SearchAggregator answers product search queries: it resolves the requested
// currency, asks the search index for candidate product IDs, and assembles one
// denormalized FoundProduct per candidate.
//
// Failure policy: the first per-candidate failure aborts the whole call and
// discards any already-built results. Partial result pages are never returned.
type SearchAggregator struct {
	store          repository.CatalogStore
	index          searchindex.ProductSearchIndex
	pricer         *pricing.Helper
	combinations   *CombinationAggregator
	customizations *CustomizationAggregator
	scope          *execctx.Scope
	log            *slog.Logger

	// mu serializes Handle: the ambient scope is shared mutable state.
	mu sync.Mutex
}

// NewSearchAggregator creates a search aggregator around a shared ambient
// scope. Concurrent Handle calls are serialized internally.
func NewSearchAggregator(
	store repository.CatalogStore,
	index searchindex.ProductSearchIndex,
	pricer *pricing.Helper,
	scope *execctx.Scope,
	log *slog.Logger,
) *SearchAggregator {
	return &SearchAggregator{
		store:          store,
		index:          index,
		pricer:         pricer,
		combinations:   NewCombinationAggregator(store, pricer),
		customizations: NewCustomizationAggregator(store),
		scope:          scope,
		log:            log,
	}
}

// Handle runs one search query end to end and returns the assembled products
// in the order the index returned them. The ambient scope holds the resolved
// currency for the duration of the call and is restored on every exit path,
// error included. Zero matches is a valid outcome, not an error.
func (s *SearchAggregator) Handle(ctx context.Context, query domain.SearchQuery) ([]domain.FoundProduct, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Currency resolution happens before any search work so an unknown ISO
	// code never touches the index.
	cur, err := s.store.ResolveCurrency(ctx, query.CurrencyISOCode)
	if err != nil {
		return nil, fmt.Errorf("resolve currency %s: %w", query.CurrencyISOCode, err)
	}

	prev := s.scope.Swap(execctx.State{
		LanguageID: s.scope.Active().LanguageID,
		Locale:     s.scope.Active().Locale,
		Currency:   cur,
	})
	defer s.scope.Swap(prev)

	active := s.scope.Active()

	candidates, err := s.index.SearchByName(ctx, active.LanguageID, query.Phrase, query.ResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}

	logger.WithContext(ctx, s.log).Debug("search candidates resolved",
		slog.String("phrase", query.Phrase),
		slog.String("currency", cur.ISOCode),
		slog.Int("candidates", len(candidates)),
	)

	results := make([]domain.FoundProduct, 0, len(candidates))
	for _, productID := range candidates {
		found, err := s.assemble(ctx, productID, active)
		if err != nil {
			return nil, fmt.Errorf("assemble product %s: %w", productID, err)
		}
		results = append(results, found)
	}

	return results, nil
}

// assemble builds the FoundProduct aggregate of one candidate.
func (s *SearchAggregator) assemble(ctx context.Context, productID string, st execctx.State) (domain.FoundProduct, error) {
	record, err := s.store.GetProduct(ctx, productID, st.LanguageID)
	if err != nil {
		return domain.FoundProduct{}, fmt.Errorf("get product: %w", err)
	}

	quote, err := s.pricer.Quote(ctx, productID, st.Currency, nil)
	if err != nil {
		return domain.FoundProduct{}, fmt.Errorf("price product: %w", err)
	}

	quantity, err := s.store.GetStockQuantity(ctx, productID)
	if err != nil {
		return domain.FoundProduct{}, fmt.Errorf("get stock quantity: %w", err)
	}

	availableOOS, err := s.store.IsAvailableWhenOutOfStock(ctx, record.OutOfStockPolicy)
	if err != nil {
		return domain.FoundProduct{}, fmt.Errorf("resolve out-of-stock policy: %w", err)
	}

	combinations, err := s.combinations.Fold(ctx, productID, st)
	if err != nil {
		return domain.FoundProduct{}, err
	}

	customizations, err := s.customizations.Fold(ctx, productID, st.LanguageID)
	if err != nil {
		return domain.FoundProduct{}, err
	}

	return domain.FoundProduct{
		ProductID:                  productID,
		Name:                       record.Name,
		FormattedPriceExcludingTax: quote.FormattedExcludingTax,
		PriceIncludingTax:          quote.IncludingTax,
		PriceExcludingTax:          quote.ExcludingTax,
		TaxRate:                    record.TaxRate,
		QuantityInStock:            quantity,
		StockLocation:              record.StockLocation,
		AvailableOutOfStock:        availableOOS,
		Combinations:               combinations,
		CustomizationFields:        customizations,
	}, nil
}
