package domain

import (
	"github.com/shopspring/decimal"
)

// Customization field type discriminators.
const (
	CustomizationTypeFile = 0
	CustomizationTypeText = 1
)

// Out-of-stock ordering policy per product.
const (
	OutOfStockDeny       = 0
	OutOfStockAllow      = 1
	OutOfStockUseDefault = 2
)

// Currency is a stored currency resolved from an ISO 4217 code.
type Currency struct {
	ID      int64  `json:"id"`
	ISOCode string `json:"iso_code"`
	// DecimalDigits is the currency's native decimal-digit count (2 for EUR, 0 for JPY).
	DecimalDigits int `json:"decimal_digits"`
}

// ProductRecord is the catalog's view of one product, loaded per candidate
// with name resolved in the active language.
type ProductRecord struct {
	ID               string
	Name             string
	TaxRate          decimal.Decimal
	StockLocation    string
	OutOfStockPolicy int
}

// CombinationRow is one raw variant row as stored: one attribute value of one
// combination. Several rows share an AttributeID when the combination spans
// multiple attribute dimensions (e.g. color and size).
type CombinationRow struct {
	AttributeID   int64
	AttributeName string
	Quantity      int
	Location      string
	Reference     string
}

// CustomizationFieldRow is one raw customization-field record under one language.
type CustomizationFieldRow struct {
	FieldID    int64
	LanguageID int64
	Label      string
	Required   bool
}

// CustomizationGroup holds the field rows of one field type, in stored order.
type CustomizationGroup struct {
	FieldTypeID int
	Rows        []CustomizationFieldRow
}
