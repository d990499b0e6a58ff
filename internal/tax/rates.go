package tax

import "github.com/shopspring/decimal"

// standardRates are the notified GST slabs, in percent.
var standardRates = []decimal.Decimal{
	decimal.Zero,
	decimal.RequireFromString("0.1"),
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("1.5"),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
	decimal.NewFromInt(40),
}

// StandardRates returns the GST slab list.
func StandardRates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(standardRates))
	copy(out, standardRates)
	return out
}

// IsStandardRate reports whether rate is one of the GST slabs.
func IsStandardRate(rate decimal.Decimal) bool {
	for _, r := range standardRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}
