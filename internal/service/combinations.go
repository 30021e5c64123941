package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/execctx"
	"github.com/storekit/catalog-search/internal/pricing"
	"github.com/storekit/catalog-search/internal/repository"
)

// attributeLabelSeparator joins the attribute names of a multi-dimension
// combination, e.g. "Red - Large".
const attributeLabelSeparator = " - "

// CombinationAggregator folds raw variant rows into deduplicated,
// price-annotated combination entries.
type CombinationAggregator struct {
	store  repository.CatalogStore
	pricer *pricing.Helper
}

// NewCombinationAggregator creates a combination aggregator.
func NewCombinationAggregator(store repository.CatalogStore, pricer *pricing.Helper) *CombinationAggregator {
	return &CombinationAggregator{store: store, pricer: pricer}
}

// Fold builds the combination map of one product. Rows sharing a combination
// ID are merged: every row appends its attribute name to the entry's label in
// input order, while quantity, prices, location, and reference come from the
// last row seen. Prices are recomputed per row via the shared pricing helper,
// independent of the parent product's own price. The absence sentinel yields
// an empty map.
func (a *CombinationAggregator) Fold(ctx context.Context, productID string, st execctx.State) (*domain.CombinationMap, error) {
	rows, err := a.store.GetAttributeCombinations(ctx, productID, st.LanguageID)
	if errors.Is(err, repository.ErrNoCombinations) {
		return domain.NewCombinationMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attribute combinations: %w", err)
	}

	combinations := domain.NewCombinationMap()
	for _, row := range rows {
		attributeID := row.AttributeID
		quote, err := a.pricer.Quote(ctx, productID, st.Currency, &attributeID)
		if err != nil {
			return nil, fmt.Errorf("price combination %d: %w", row.AttributeID, err)
		}

		label := row.AttributeName
		if existing, ok := combinations.Get(row.AttributeID); ok {
			label = existing.AttributeLabel + attributeLabelSeparator + row.AttributeName
		}

		combinations.Put(row.AttributeID, &domain.ProductCombination{
			CombinationID:              row.AttributeID,
			AttributeLabel:             label,
			QuantityInStock:            row.Quantity,
			FormattedPriceExcludingTax: quote.FormattedExcludingTax,
			PriceExcludingTax:          quote.ExcludingTax,
			PriceIncludingTax:          quote.IncludingTax,
			StockLocation:              row.Location,
			Reference:                  row.Reference,
		})
	}

	return combinations, nil
}
