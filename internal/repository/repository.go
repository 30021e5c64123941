package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/storekit/catalog-search/internal/domain"
)

// Absence sentinels. A product without combinations or customization fields
// configured is not an error and is distinct from an empty row set; aggregators
// translate these into empty maps.
var (
	ErrNoCombinations        = errors.New("product has no attribute combinations")
	ErrNoCustomizationFields = errors.New("product has no customization fields")
)

// CatalogStore is the persistence boundary for products, currencies,
// combinations, customization fields, stock, and tax data. Implementations
// translate their I/O failures into errors wrapping
// apperrors.ErrStoreUnavailable.
type CatalogStore interface {
	// ResolveCurrency resolves an ISO 4217 code to a stored active currency.
	// An unknown code yields an error wrapping apperrors.ErrCurrencyNotFound.
	ResolveCurrency(ctx context.Context, isoCode string) (domain.Currency, error)

	// GetProduct loads one product record with its name in the given language.
	GetProduct(ctx context.Context, productID string, languageID int64) (domain.ProductRecord, error)

	// GetProductPrice returns the raw unit price of a product, or of one of
	// its combinations when attributeID is non-nil, in the given currency.
	GetProductPrice(ctx context.Context, productID string, currencyID int64, includeTax bool, attributeID *int64) (decimal.Decimal, error)

	// GetAttributeCombinations returns the raw variant rows of a product in
	// stored order, or ErrNoCombinations when none are configured.
	GetAttributeCombinations(ctx context.Context, productID string, languageID int64) ([]domain.CombinationRow, error)

	// GetCustomizationFields returns the customization field rows grouped by
	// field type, or ErrNoCustomizationFields when none are configured.
	GetCustomizationFields(ctx context.Context, productID string) ([]domain.CustomizationGroup, error)

	// GetStockQuantity returns the stock level of a product. Negative values
	// represent a backorder deficit.
	GetStockQuantity(ctx context.Context, productID string) (int, error)

	// IsAvailableWhenOutOfStock resolves a product's out-of-stock policy flag
	// against the shop-wide default.
	IsAvailableWhenOutOfStock(ctx context.Context, policy int) (bool, error)
}
