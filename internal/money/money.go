// Package money converts between user entered amounts and the integer
// cents that are stored and calculated with.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountEmpty   = errors.New("the amount must not be empty")
	ErrAmountInvalid = errors.New("the amount is not a valid number")

	// ErrAmountOutOfRange wraps ErrAmountInvalid.
	ErrAmountOutOfRange = fmt.Errorf("%w: it is too large", ErrAmountInvalid)
)

// DollarsToCents parses a decimal amount and rounds it half away from
// zero to whole cents, so "12.345" becomes 1235 and "-0.005" becomes -1.
func DollarsToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrAmountEmpty
	}

	// Thousands separators are accepted, currency symbols are not
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrAmountInvalid, s)
	}

	cents, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}

	return cents, nil
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// FromDecimal converts a decimal amount of currency units to cents.
// Amounts that do not fit into int64 cents are rejected.
func FromDecimal(d decimal.Decimal) (int64, error) {
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrAmountOutOfRange
	}

	return cents.IntPart(), nil
}

// CentsToDollars converts cents to a decimal amount of currency units.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// CentsToString formats cents with exactly two decimal places and no
// grouping, e.g. 123456 is "1234.56".
func CentsToString(cents int64) string {
	return CentsToDollars(cents).StringFixed(2)
}

// CeilDiv divides a by b and rounds up. It returns 0 for b <= 0.
func CeilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}

	if a <= 0 {
		return 0
	}

	return (a + b - 1) / b
}

// Percent returns the share of part in total as a percentage with
// two decimal places. A zero total yields zero.
func Percent(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(part).Div(decimal.NewFromInt(total)).Mul(decimal.NewFromInt(100)).Round(2)
}
