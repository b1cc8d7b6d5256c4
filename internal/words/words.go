// Package words spells currency amounts in English using the Indian
// numbering system (thousand, lakh, crore).
package words

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	thousand = 1_000
	lakh     = 100_000
	crore    = 10_000_000
)

var (
	hundred  = decimal.NewFromInt(100)
	bigCent  = big.NewInt(100)
	bigCrore = big.NewInt(crore)
)

// Converter spells amounts with configurable unit labels.
type Converter struct {
	MajorUnit string // "Rupees"
	MinorUnit string // "Paise"
}

// Default is the INR converter.
var Default = Converter{MajorUnit: "Rupees", MinorUnit: "Paise"}

// ToWords spells amount with the default labels.
func ToWords(amount decimal.Decimal) (string, error) {
	return Default.ToWords(amount)
}

// ToWords spells amount, e.g. 1250000 -> "Twelve Lakh Fifty Thousand" and
// 10.5 -> "Ten and Fifty Paise". The fraction is rounded to two digits; a
// fraction that rounds to a whole unit carries into the major part.
func (c Converter) ToWords(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("words.ToWords: %s: %w", amount, domain.ErrNegativeAmount)
	}

	minorTotal := amount.Round(2).Mul(hundred).BigInt()
	major, minor := new(big.Int).QuoRem(minorTotal, bigCent, new(big.Int))

	out := spellBig(major)
	if out == "" {
		out = "Zero"
	}
	if minor.Sign() > 0 {
		out += " and " + spell(minor.Int64()) + " " + c.MinorUnit
	}
	return out, nil
}

// Phrase wraps the spelled amount for an invoice summary:
// "Rupees Two Thousand One Hundred Eighty Only".
func (c Converter) Phrase(amount decimal.Decimal) (string, error) {
	w, err := c.ToWords(amount)
	if err != nil {
		return "", err
	}
	parts := []string{w, "Only"}
	if c.MajorUnit != "" {
		parts = append([]string{c.MajorUnit}, parts...)
	}
	return strings.Join(parts, " "), nil
}

// Phrase uses the default labels.
func Phrase(amount decimal.Decimal) (string, error) {
	return Default.Phrase(amount)
}

// spellBig peels crores off n until the remainder fits spell, so amounts
// beyond int64 still read "... Crore Crore ...".
func spellBig(n *big.Int) string {
	if n.Cmp(bigCrore) < 0 {
		return spell(n.Int64())
	}
	q, r := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
	return join(spellBig(q)+" Crore", spell(r.Int64()))
}

// spell returns "" for zero so callers can compose groups.
func spell(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return join(tens[n/10], ones[n%10])
	case n < thousand:
		return join(ones[n/100]+" Hundred", spell(n%100))
	case n < lakh:
		return join(spell(n/thousand)+" Thousand", spell(n%thousand))
	case n < crore:
		return join(spell(n/lakh)+" Lakh", spell(n%lakh))
	default:
		return join(spell(n/crore)+" Crore", spell(n%crore))
	}
}

func join(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}
