package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Scale is the number of fractional digits for EUR amounts
const Scale = 2

// FromString parses a decimal amount from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal amount from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a float to decimal. Returns false when the value
// has no decimal representation (NaN or infinity).
func FromFloat(v float64) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Zero, false
	}
	return decimal.NewFromFloat(v), true
}

// Round2 rounds to cent precision, half away from zero
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// VATFor computes the expected VAT amount for a net value at the given
// rate, rounded to cent precision half away from zero.
func VATFor(net, rate decimal.Decimal) decimal.Decimal {
	return net.Mul(rate).Round(Scale)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// WithinTolerance reports whether a and b differ by no more than tol
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
