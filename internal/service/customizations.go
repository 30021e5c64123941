package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/storekit/catalog-search/pkg/errors"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
)

// CustomizationAggregator folds per-type customization field rows into field
// entries keyed by field ID under the active language.
type CustomizationAggregator struct {
	store repository.CatalogStore
}

// NewCustomizationAggregator creates a customization aggregator.
func NewCustomizationAggregator(store repository.CatalogStore) *CustomizationAggregator {
	return &CustomizationAggregator{store: store}
}

// Fold builds the customization field map of one product. Each field is read
// once, under the active language; field IDs are globally unique, so fields
// from different type groups never collide. A field present in the catalog but
// missing its row for the active language is a data-integrity fault. The
// absence sentinel yields an empty map.
func (a *CustomizationAggregator) Fold(ctx context.Context, productID string, languageID int64) (*domain.CustomizationFieldMap, error) {
	groups, err := a.store.GetCustomizationFields(ctx, productID)
	if errors.Is(err, repository.ErrNoCustomizationFields) {
		return domain.NewCustomizationFieldMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customization fields: %w", err)
	}

	fields := domain.NewCustomizationFieldMap()
	for _, group := range groups {
		var seen []int64
		for _, row := range group.Rows {
			seen = append(seen, row.FieldID)
			if row.LanguageID != languageID {
				continue
			}
			fields.Put(row.FieldID, &domain.ProductCustomizationField{
				FieldID:     row.FieldID,
				FieldTypeID: group.FieldTypeID,
				Label:       row.Label,
				Required:    row.Required,
			})
		}
		for _, fieldID := range seen {
			if _, ok := fields.Get(fieldID); !ok {
				return nil, apperrors.MalformedCatalogData(
					fmt.Sprintf("customization field %d of product %s has no row for language %d", fieldID, productID, languageID))
			}
		}
	}

	return fields, nil
}
