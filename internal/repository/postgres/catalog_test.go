package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/catalog-search/pkg/database"
	apperrors "github.com/storekit/catalog-search/pkg/errors"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
)

func newTestRepo(t *testing.T) (*CatalogRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewCatalogRepository(mock), mock
}

func int64Ptr(n int64) *int64 { return &n }

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCatalogRepository_ResolveCurrency_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM currencies").
		WithArgs("EUR").
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "iso_code", "decimal_digits"}).AddRow(int64(3), "EUR", 2),
		)

	got, err := repo.ResolveCurrency(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, domain.Currency{ID: 3, ISOCode: "EUR", DecimalDigits: 2}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_ResolveCurrency_Unknown(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM currencies").
		WithArgs("ZZZ").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.ResolveCurrency(context.Background(), "ZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_ResolveCurrency_StoreFailure(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM currencies").
		WithArgs("EUR").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ResolveCurrency(context.Background(), "EUR")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetProduct_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("JOIN product_translations").
		WithArgs("prod-1", int64(1)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "tax_rate", "location", "out_of_stock_policy"}).
				AddRow("prod-1", "Mug", "20.000", "WH-1", domain.OutOfStockUseDefault),
		)

	got, err := repo.GetProduct(context.Background(), "prod-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", got.ID)
	assert.Equal(t, "Mug", got.Name)
	assert.True(t, got.TaxRate.Equal(decimalFromString(t, "20")))
	assert.Equal(t, "WH-1", got.StockLocation)
	assert.Equal(t, domain.OutOfStockUseDefault, got.OutOfStockPolicy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetProduct_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("JOIN product_translations").
		WithArgs("missing", int64(1)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetProduct(context.Background(), "missing", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetProduct_MalformedTaxRate(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("JOIN product_translations").
		WithArgs("prod-1", int64(1)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "tax_rate", "location", "out_of_stock_policy"}).
				AddRow("prod-1", "Mug", "twenty", "", domain.OutOfStockDeny),
		)

	_, err := repo.GetProduct(context.Background(), "prod-1", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedCatalogData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetProductPrice(t *testing.T) {
	tests := []struct {
		name        string
		includeTax  bool
		attributeID *int64
		raw         string
		want        string
	}{
		{name: "product net price", includeTax: false, raw: "19.995000", want: "19.995"},
		{name: "product gross price", includeTax: true, raw: "23.994000", want: "23.994"},
		{name: "combination price", includeTax: false, attributeID: int64Ptr(10), raw: "9.990000", want: "9.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepo(t)

			mock.ExpectQuery("FROM product_prices").
				WithArgs("prod-1", int64(3), tt.includeTax, tt.attributeID).
				WillReturnRows(pgxmock.NewRows([]string{"price"}).AddRow(tt.raw))

			got, err := repo.GetProductPrice(context.Background(), "prod-1", 3, tt.includeTax, tt.attributeID)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimalFromString(t, tt.want)), "got %s", got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCatalogRepository_GetAttributeCombinations_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("JOIN combination_attributes").
		WithArgs("prod-1", int64(1)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "attribute_name", "quantity", "stock_location", "reference"}).
				AddRow(int64(10), "Red", 3, "A1", "SKU-RED").
				AddRow(int64(10), "Large", 3, "A1", "SKU-RED").
				AddRow(int64(20), "Blue", 7, "B2", "SKU-BLUE"),
		)

	got, err := repo.GetAttributeCombinations(context.Background(), "prod-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.CombinationRow{AttributeID: 10, AttributeName: "Red", Quantity: 3, Location: "A1", Reference: "SKU-RED"}, got[0])
	assert.Equal(t, "Large", got[1].AttributeName)
	assert.Equal(t, int64(20), got[2].AttributeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetAttributeCombinations_NoneSentinel(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("JOIN combination_attributes").
		WithArgs("prod-1", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "attribute_name", "quantity", "stock_location", "reference"}))

	_, err := repo.GetAttributeCombinations(context.Background(), "prod-1", 1)
	assert.ErrorIs(t, err, repository.ErrNoCombinations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetCustomizationFields_GroupsByType(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM customization_fields").
		WithArgs("prod-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"field_type", "id", "language_id", "label", "required"}).
				AddRow(domain.CustomizationTypeFile, int64(9), int64(1), "Picture", false).
				AddRow(domain.CustomizationTypeText, int64(7), int64(1), "Engraving", true).
				AddRow(domain.CustomizationTypeText, int64(7), int64(2), "Gravure", true),
		)

	got, err := repo.GetCustomizationFields(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.CustomizationTypeFile, got[0].FieldTypeID)
	require.Len(t, got[0].Rows, 1)
	assert.Equal(t, "Picture", got[0].Rows[0].Label)

	assert.Equal(t, domain.CustomizationTypeText, got[1].FieldTypeID)
	require.Len(t, got[1].Rows, 2)
	assert.Equal(t, int64(1), got[1].Rows[0].LanguageID)
	assert.Equal(t, int64(2), got[1].Rows[1].LanguageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetCustomizationFields_NoneSentinel(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM customization_fields").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"field_type", "id", "language_id", "label", "required"}))

	_, err := repo.GetCustomizationFields(context.Background(), "prod-1")
	assert.ErrorIs(t, err, repository.ErrNoCustomizationFields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetStockQuantity(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM stock").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(-4))

	got, err := repo.GetStockQuantity(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, -4, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetStockQuantity_MissingRowIsZero(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM stock").
		WithArgs("prod-1").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetStockQuantity(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_IsAvailableWhenOutOfStock(t *testing.T) {
	t.Run("explicit policies skip the settings lookup", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		deny, err := repo.IsAvailableWhenOutOfStock(context.Background(), domain.OutOfStockDeny)
		require.NoError(t, err)
		assert.False(t, deny)

		allow, err := repo.IsAvailableWhenOutOfStock(context.Background(), domain.OutOfStockAllow)
		require.NoError(t, err)
		assert.True(t, allow)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default policy reads shop settings", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery("FROM shop_settings").
			WithArgs(outOfStockDefaultSetting).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(true))

		got, err := repo.IsAvailableWhenOutOfStock(context.Background(), domain.OutOfStockUseDefault)
		require.NoError(t, err)
		assert.True(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
