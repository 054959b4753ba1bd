// Package types provides common type aliases and money arithmetic.
package types

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

var four = decimal.NewFromInt(4)

// RoundToQuarter rounds a Money value to the nearest quarter unit
// (.00, .25, .50, .75). The rule is round(value*4)/4 where the scaled
// value rounds ties to the nearest even integer; all derived and billed
// prices pass through it.
func RoundToQuarter(v Money) Money {
	return v.Mul(four).RoundBank(0).Div(four)
}

// AveragePrice returns the arithmetic mean of the price history rounded
// to the nearest quarter. ok is false for an empty history ("no value").
func AveragePrice(history []Money) (avg Money, ok bool) {
	if len(history) == 0 {
		return Money{}, false
	}
	sum := decimal.Zero
	for _, p := range history {
		sum = sum.Add(p)
	}
	avg = sum.Div(decimal.NewFromInt(int64(len(history))))
	return RoundToQuarter(avg), true
}

// MedianPrice returns the median of the price history rounded to the
// nearest quarter. For an even-length history the two middle values are
// averaged. ok is false for an empty history.
func MedianPrice(history []Money) (med Money, ok bool) {
	if len(history) == 0 {
		return Money{}, false
	}
	sorted := make([]Money, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		med = sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
	} else {
		med = sorted[mid]
	}
	return RoundToQuarter(med), true
}
