package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/repository"
)

// Quote is the computed price pair of one product or combination. Only the
// tax-excluded price carries a formatted display string; the tax-included
// price is numeric only. That asymmetry is part of the output contract.
type Quote struct {
	ExcludingTax          decimal.Decimal
	IncludingTax          decimal.Decimal
	FormattedExcludingTax string
}

// Helper computes rounded, display-ready prices. The same helper serves
// product-level and combination-level pricing so rounding is applied
// identically to both.
type Helper struct {
	store     repository.CatalogStore
	policy    PrecisionPolicy
	formatter Formatter
}

// NewHelper creates a pricing helper.
func NewHelper(store repository.CatalogStore, policy PrecisionPolicy, formatter Formatter) *Helper {
	return &Helper{
		store:     store,
		policy:    policy,
		formatter: formatter,
	}
}

// Quote computes the tax-excluded and tax-included unit prices of a product
// (or of one combination when attributeID is non-nil) in the given currency,
// rounded half-up to the precision the policy derives from the currency's
// decimal digits.
func (h *Helper) Quote(ctx context.Context, productID string, cur domain.Currency, attributeID *int64) (Quote, error) {
	excluding, err := h.store.GetProductPrice(ctx, productID, cur.ID, false, attributeID)
	if err != nil {
		return Quote{}, fmt.Errorf("get tax-excluded price: %w", err)
	}

	including, err := h.store.GetProductPrice(ctx, productID, cur.ID, true, attributeID)
	if err != nil {
		return Quote{}, fmt.Errorf("get tax-included price: %w", err)
	}

	// shopspring Round is half away from zero, which is half-up for the
	// non-negative prices handled here.
	precision := int32(h.policy.Precision(cur.DecimalDigits))
	excluding = excluding.Round(precision)
	including = including.Round(precision)

	formatted, err := h.formatter.Format(excluding, cur.ISOCode)
	if err != nil {
		return Quote{}, fmt.Errorf("format price: %w", err)
	}

	return Quote{
		ExcludingTax:          excluding,
		IncludingTax:          including,
		FormattedExcludingTax: formatted,
	}, nil
}
