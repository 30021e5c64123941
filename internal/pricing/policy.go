package pricing

// PrecisionPolicy maps a currency's native decimal-digit count to the number
// of digits used when rounding displayed prices. The indirection exists
// because display precision may be raised or capped relative to the currency's
// natural precision.
type PrecisionPolicy interface {
	Precision(currencyDecimalDigits int) int
}

// DefaultPolicy rounds to the currency's native digit count, raised to an
// optional minimum display precision.
type DefaultPolicy struct {
	MinDisplayDigits int
}

// Precision implements PrecisionPolicy.
func (p DefaultPolicy) Precision(currencyDecimalDigits int) int {
	if currencyDecimalDigits < 0 {
		currencyDecimalDigits = 0
	}
	if currencyDecimalDigits < p.MinDisplayDigits {
		return p.MinDisplayDigits
	}
	return currencyDecimalDigits
}
