package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/storekit/catalog-search/pkg/database"
	apperrors "github.com/storekit/catalog-search/pkg/errors"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
)

// outOfStockDefaultSetting is the shop_settings key consulted when a product
// delegates its out-of-stock policy to the shop default.
const outOfStockDefaultSetting = "allow_ordering_out_of_stock"

// CatalogRepository implements repository.CatalogStore using PostgreSQL.
// Monetary columns are selected as text and parsed into decimals at this
// boundary so no float64 conversion ever touches a price.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ResolveCurrency looks up an active currency by its ISO 4217 code.
func (r *CatalogRepository) ResolveCurrency(ctx context.Context, isoCode string) (domain.Currency, error) {
	query := `
		SELECT id, iso_code, decimal_digits
		FROM currencies
		WHERE iso_code = $1 AND active`

	var c domain.Currency
	err := r.pool.QueryRow(ctx, query, isoCode).Scan(&c.ID, &c.ISOCode, &c.DecimalDigits)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Currency{}, apperrors.CurrencyNotFound(isoCode)
	}
	if err != nil {
		return domain.Currency{}, apperrors.StoreUnavailable("resolve currency", err)
	}

	return c, nil
}

// GetProduct loads one product with its name in the given language.
func (r *CatalogRepository) GetProduct(ctx context.Context, productID string, languageID int64) (domain.ProductRecord, error) {
	query := `
		SELECT p.id, t.name, p.tax_rate::text, COALESCE(s.location, ''), p.out_of_stock_policy
		FROM products p
		JOIN product_translations t ON t.product_id = p.id AND t.language_id = $2
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.id = $1`

	var (
		rec     domain.ProductRecord
		taxRate string
	)
	err := r.pool.QueryRow(ctx, query, productID, languageID).
		Scan(&rec.ID, &rec.Name, &taxRate, &rec.StockLocation, &rec.OutOfStockPolicy)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProductRecord{}, apperrors.NotFound("product", productID)
	}
	if err != nil {
		return domain.ProductRecord{}, apperrors.StoreUnavailable("get product", err)
	}

	rec.TaxRate, err = decimal.NewFromString(taxRate)
	if err != nil {
		return domain.ProductRecord{}, apperrors.MalformedCatalogData(
			fmt.Sprintf("product %s has unparseable tax rate %q", productID, taxRate))
	}

	return rec, nil
}

// GetProductPrice returns the unit price of a product, or of one combination
// when attributeID is non-nil, in the given currency. The tax-included price
// is derived from the stored net price and the product's tax rate.
func (r *CatalogRepository) GetProductPrice(ctx context.Context, productID string, currencyID int64, includeTax bool, attributeID *int64) (decimal.Decimal, error) {
	query := `
		SELECT (CASE WHEN $3 THEN pp.price * (1 + p.tax_rate / 100) ELSE pp.price END)::text
		FROM product_prices pp
		JOIN products p ON p.id = pp.product_id
		WHERE pp.product_id = $1
		  AND pp.currency_id = $2
		  AND pp.combination_id IS NOT DISTINCT FROM $4`

	var raw string
	err := r.pool.QueryRow(ctx, query, productID, currencyID, includeTax, attributeID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, apperrors.NotFound("product price", productID)
	}
	if err != nil {
		return decimal.Decimal{}, apperrors.StoreUnavailable("get product price", err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperrors.MalformedCatalogData(
			fmt.Sprintf("product %s has unparseable price %q", productID, raw))
	}

	return price, nil
}

// GetAttributeCombinations returns the raw variant rows of a product, one row
// per attribute value, grouped by combination and ordered by attribute
// position. A product with no combinations yields ErrNoCombinations.
func (r *CatalogRepository) GetAttributeCombinations(ctx context.Context, productID string, languageID int64) ([]domain.CombinationRow, error) {
	query := `
		SELECT c.id, ca.attribute_name, c.quantity, COALESCE(c.stock_location, ''), COALESCE(c.reference, '')
		FROM combinations c
		JOIN combination_attributes ca ON ca.combination_id = c.id AND ca.language_id = $2
		WHERE c.product_id = $1
		ORDER BY c.id, ca.position`

	rows, err := r.pool.Query(ctx, query, productID, languageID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("get attribute combinations", err)
	}
	defer rows.Close()

	var result []domain.CombinationRow
	for rows.Next() {
		var row domain.CombinationRow
		if err := rows.Scan(&row.AttributeID, &row.AttributeName, &row.Quantity, &row.Location, &row.Reference); err != nil {
			return nil, apperrors.StoreUnavailable("scan combination row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable("iterate combination rows", err)
	}

	if len(result) == 0 {
		return nil, repository.ErrNoCombinations
	}

	return result, nil
}

// GetCustomizationFields returns the customization field rows of a product
// grouped by field type, every language row included. A product with no
// fields yields ErrNoCustomizationFields.
func (r *CatalogRepository) GetCustomizationFields(ctx context.Context, productID string) ([]domain.CustomizationGroup, error) {
	query := `
		SELECT f.field_type, f.id, t.language_id, t.label, f.required
		FROM customization_fields f
		JOIN customization_field_translations t ON t.field_id = f.id
		WHERE f.product_id = $1
		ORDER BY f.field_type, f.id, t.language_id`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("get customization fields", err)
	}
	defer rows.Close()

	var groups []domain.CustomizationGroup
	for rows.Next() {
		var (
			fieldType int
			row       domain.CustomizationFieldRow
		)
		if err := rows.Scan(&fieldType, &row.FieldID, &row.LanguageID, &row.Label, &row.Required); err != nil {
			return nil, apperrors.StoreUnavailable("scan customization field row", err)
		}

		if len(groups) == 0 || groups[len(groups)-1].FieldTypeID != fieldType {
			groups = append(groups, domain.CustomizationGroup{FieldTypeID: fieldType})
		}
		last := &groups[len(groups)-1]
		last.Rows = append(last.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable("iterate customization field rows", err)
	}

	if len(groups) == 0 {
		return nil, repository.ErrNoCustomizationFields
	}

	return groups, nil
}

// GetStockQuantity returns the stock level of a product. A missing stock row
// counts as zero; negative quantities represent a backorder deficit.
func (r *CatalogRepository) GetStockQuantity(ctx context.Context, productID string) (int, error) {
	query := `SELECT quantity FROM stock WHERE product_id = $1`

	var quantity int
	err := r.pool.QueryRow(ctx, query, productID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.StoreUnavailable("get stock quantity", err)
	}

	return quantity, nil
}

// IsAvailableWhenOutOfStock resolves a product's out-of-stock policy flag,
// consulting the shop-wide default when the product delegates.
func (r *CatalogRepository) IsAvailableWhenOutOfStock(ctx context.Context, policy int) (bool, error) {
	switch policy {
	case domain.OutOfStockDeny:
		return false, nil
	case domain.OutOfStockAllow:
		return true, nil
	}

	query := `SELECT value::boolean FROM shop_settings WHERE key = $1`

	var allow bool
	err := r.pool.QueryRow(ctx, query, outOfStockDefaultSetting).Scan(&allow)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.StoreUnavailable("resolve out-of-stock default", err)
	}

	return allow, nil
}
