package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
	"github.com/storekit/catalog-search/internal/searchindex"
)

// stubStore is a function-field fake of repository.CatalogStore. Unset fields
// fall back to harmless defaults; absence sentinels are the default for
// combinations and customization fields.
type stubStore struct {
	resolveCurrencyFn   func(ctx context.Context, isoCode string) (domain.Currency, error)
	getProductFn        func(ctx context.Context, productID string, languageID int64) (domain.ProductRecord, error)
	getProductPriceFn   func(ctx context.Context, productID string, currencyID int64, includeTax bool, attributeID *int64) (decimal.Decimal, error)
	getCombinationsFn   func(ctx context.Context, productID string, languageID int64) ([]domain.CombinationRow, error)
	getCustomizationsFn func(ctx context.Context, productID string) ([]domain.CustomizationGroup, error)
	getStockFn          func(ctx context.Context, productID string) (int, error)
	availableOOSFn      func(ctx context.Context, policy int) (bool, error)
}

func (s *stubStore) ResolveCurrency(ctx context.Context, isoCode string) (domain.Currency, error) {
	if s.resolveCurrencyFn != nil {
		return s.resolveCurrencyFn(ctx, isoCode)
	}
	return domain.Currency{ID: 1, ISOCode: isoCode, DecimalDigits: 2}, nil
}

func (s *stubStore) GetProduct(ctx context.Context, productID string, languageID int64) (domain.ProductRecord, error) {
	if s.getProductFn != nil {
		return s.getProductFn(ctx, productID, languageID)
	}
	return domain.ProductRecord{ID: productID, Name: "Product " + productID}, nil
}

func (s *stubStore) GetProductPrice(ctx context.Context, productID string, currencyID int64, includeTax bool, attributeID *int64) (decimal.Decimal, error) {
	if s.getProductPriceFn != nil {
		return s.getProductPriceFn(ctx, productID, currencyID, includeTax, attributeID)
	}
	return decimal.Zero, nil
}

func (s *stubStore) GetAttributeCombinations(ctx context.Context, productID string, languageID int64) ([]domain.CombinationRow, error) {
	if s.getCombinationsFn != nil {
		return s.getCombinationsFn(ctx, productID, languageID)
	}
	return nil, repository.ErrNoCombinations
}

func (s *stubStore) GetCustomizationFields(ctx context.Context, productID string) ([]domain.CustomizationGroup, error) {
	if s.getCustomizationsFn != nil {
		return s.getCustomizationsFn(ctx, productID)
	}
	return nil, repository.ErrNoCustomizationFields
}

func (s *stubStore) GetStockQuantity(ctx context.Context, productID string) (int, error) {
	if s.getStockFn != nil {
		return s.getStockFn(ctx, productID)
	}
	return 0, nil
}

func (s *stubStore) IsAvailableWhenOutOfStock(ctx context.Context, policy int) (bool, error) {
	if s.availableOOSFn != nil {
		return s.availableOOSFn(ctx, policy)
	}
	return false, nil
}

// stubIndex returns a fixed candidate list and records whether it was called.
type stubIndex struct {
	candidates []string
	err        error
	called     bool
}

func (s *stubIndex) SearchByName(_ context.Context, _ int64, _ string, limit int) ([]string, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	if len(s.candidates) > limit {
		return s.candidates[:limit], nil
	}
	return s.candidates, nil
}

func (s *stubIndex) Index(context.Context, *searchindex.ProductDocument) error { return nil }

func (s *stubIndex) Delete(context.Context, string) error { return nil }

// stubFormatter renders "ISO amount" without locale rules.
type stubFormatter struct{}

func (stubFormatter) Format(amount decimal.Decimal, currencyISOCode string) (string, error) {
	return fmt.Sprintf("%s %s", currencyISOCode, amount.String()), nil
}
