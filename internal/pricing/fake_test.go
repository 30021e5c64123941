package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storekit/catalog-search/internal/domain"
)

// fakeCatalogStore is an embeddable no-op CatalogStore for test stubs.
type fakeCatalogStore struct{}

func (fakeCatalogStore) ResolveCurrency(context.Context, string) (domain.Currency, error) {
	return domain.Currency{}, nil
}

func (fakeCatalogStore) GetProduct(context.Context, string, int64) (domain.ProductRecord, error) {
	return domain.ProductRecord{}, nil
}

func (fakeCatalogStore) GetProductPrice(context.Context, string, int64, bool, *int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (fakeCatalogStore) GetAttributeCombinations(context.Context, string, int64) ([]domain.CombinationRow, error) {
	return nil, nil
}

func (fakeCatalogStore) GetCustomizationFields(context.Context, string) ([]domain.CustomizationGroup, error) {
	return nil, nil
}

func (fakeCatalogStore) GetStockQuantity(context.Context, string) (int, error) {
	return 0, nil
}

func (fakeCatalogStore) IsAvailableWhenOutOfStock(context.Context, int) (bool, error) {
	return false, nil
}
