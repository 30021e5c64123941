package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders a numeric price as a locale-formatted display string.
type Formatter interface {
	Format(amount decimal.Decimal, currencyISOCode string) (string, error)
}

// LocaleFormatter formats prices with the currency symbol and separators of a
// fixed locale.
type LocaleFormatter struct {
	printer *message.Printer
}

// NewLocaleFormatter creates a formatter for the given BCP 47 locale tag.
func NewLocaleFormatter(locale string) (*LocaleFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &LocaleFormatter{printer: message.NewPrinter(tag)}, nil
}

// Format implements Formatter. The float conversion affects display only;
// stored prices stay decimal.
func (f *LocaleFormatter) Format(amount decimal.Decimal, currencyISOCode string) (string, error) {
	unit, err := currency.ParseISO(currencyISOCode)
	if err != nil {
		return "", fmt.Errorf("parse currency %q: %w", currencyISOCode, err)
	}

	value, _ := amount.Float64()
	return f.printer.Sprint(currency.NarrowSymbol(unit.Amount(value))), nil
}
