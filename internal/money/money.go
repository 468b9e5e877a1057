package money

import "github.com/shopspring/decimal"

// FromMinorUnits converts provider amounts in minor units (cents) to decimal
// currency without passing through floating point, so 1999 is exactly 19.99.
func FromMinorUnits(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

// ToMinorUnits is the inverse, rounding to currency precision first.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}
