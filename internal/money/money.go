// Package money holds presentation and comparison helpers for decimal amounts.
// Arithmetic stays at full precision everywhere else; rounding happens here.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits shown for currency.
const DisplayPlaces = 2

// DateLayout renders dates as "05 Mar 2025".
const DateLayout = "02 Jan 2006"

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}

// Fixed returns the amount as a plain two-place string, e.g. "1180.00".
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}

// ApproxEqual reports whether a and b agree at two places within tolerance.
func ApproxEqual(a, b, tolerance decimal.Decimal) bool {
	return Round(a).Sub(Round(b)).Abs().LessThanOrEqual(tolerance)
}

// Format renders an amount with the currency symbol and Indian digit grouping,
// e.g. "₹1,23,456.78". Negative amounts keep a leading minus before the symbol.
func Format(d decimal.Decimal, symbol string) string {
	return formatGrouped(d, symbol, groupIndian)
}

// FormatWestern uses three-digit grouping, for currencies other than INR.
func FormatWestern(d decimal.Decimal, symbol string) string {
	return formatGrouped(d, symbol, groupWestern)
}

// FormatFor picks the grouping convention for the currency code.
func FormatFor(d decimal.Decimal, currency, symbol string) string {
	if strings.EqualFold(currency, "INR") {
		return Format(d, symbol)
	}
	return FormatWestern(d, symbol)
}

// Paise returns the amount in minor units, rounded.
func Paise(d decimal.Decimal) int64 {
	return Round(d).Mul(hundred).IntPart()
}

func formatGrouped(d decimal.Decimal, symbol string, group func(string) string) string {
	s := Round(d).Abs().StringFixed(DisplayPlaces)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if Round(d).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// groupIndian places the first separator after three digits from the right
// and every two digits after that (12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

func groupWestern(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}
