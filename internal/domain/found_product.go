package domain

import (
	"github.com/shopspring/decimal"
)

// CombinationMap maps combinationID to ProductCombination in first-seen order.
type CombinationMap = OrderedMap[int64, *ProductCombination]

// CustomizationFieldMap maps fieldID to ProductCustomizationField in first-seen order.
type CustomizationFieldMap = OrderedMap[int64, *ProductCustomizationField]

// NewCombinationMap creates an empty combination map.
func NewCombinationMap() *CombinationMap {
	return NewOrderedMap[int64, *ProductCombination]()
}

// NewCustomizationFieldMap creates an empty customization field map.
func NewCustomizationFieldMap() *CustomizationFieldMap {
	return NewOrderedMap[int64, *ProductCustomizationField]()
}

// FoundProduct is the denormalized presentation record assembled for one
// search match. It is built once per query and never mutated afterwards; its
// combination and customization maps are exclusively owned, never shared
// between instances.
type FoundProduct struct {
	ProductID string `json:"product_id"`
	// Name is resolved in the active language.
	Name                       string          `json:"name"`
	FormattedPriceExcludingTax string          `json:"formatted_price_excluding_tax"`
	PriceIncludingTax          decimal.Decimal `json:"price_including_tax"`
	PriceExcludingTax          decimal.Decimal `json:"price_excluding_tax"`
	// TaxRate is a percentage, e.g. 20 for 20%.
	TaxRate decimal.Decimal `json:"tax_rate"`
	// QuantityInStock may be negative: a backorder deficit.
	QuantityInStock     int                    `json:"quantity_in_stock"`
	StockLocation       string                 `json:"stock_location"`
	AvailableOutOfStock bool                   `json:"available_out_of_stock"`
	Combinations        *CombinationMap        `json:"combinations"`
	CustomizationFields *CustomizationFieldMap `json:"customization_fields"`
}

// ProductCombination is one purchasable variant of a product, keyed by its
// combination ID. Rows sharing an ID are merged: the label concatenates every
// contributing attribute name, the remaining fields come from the last row.
type ProductCombination struct {
	CombinationID              int64           `json:"combination_id"`
	AttributeLabel             string          `json:"attribute_label"`
	QuantityInStock            int             `json:"quantity_in_stock"`
	FormattedPriceExcludingTax string          `json:"formatted_price_excluding_tax"`
	PriceExcludingTax          decimal.Decimal `json:"price_excluding_tax"`
	PriceIncludingTax          decimal.Decimal `json:"price_including_tax"`
	StockLocation              string          `json:"stock_location"`
	Reference                  string          `json:"reference"`
}

// ProductCustomizationField is a buyer-supplied input attached to a product.
type ProductCustomizationField struct {
	FieldID     int64  `json:"field_id"`
	FieldTypeID int    `json:"field_type_id"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
}
