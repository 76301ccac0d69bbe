package service

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	twelve   = decimal.NewFromInt(12)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// roundMinor rounds half away from zero to whole minor units, saturating at
// the int64 range instead of wrapping.
func roundMinor(d decimal.Decimal) int64 {
	r := d.Round(0)
	switch {
	case r.GreaterThan(maxMinor):
		return math.MaxInt64
	case r.LessThan(minMinor):
		return math.MinInt64
	}
	return r.IntPart()
}

// addMinor adds two non-negative amounts, saturating at math.MaxInt64.
func addMinor(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// monthlyInterest is round(balance * annualRate / 12).
func monthlyInterest(balance int64, annualRate float64) int64 {
	if balance <= 0 || annualRate <= 0 {
		return 0
	}
	return roundMinor(decimal.NewFromInt(balance).
		Mul(decimal.NewFromFloat(annualRate)).
		Div(twelve))
}

func scaleMinor(amount int64, factor float64) int64 {
	return roundMinor(decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(factor)))
}

func absMinor(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
