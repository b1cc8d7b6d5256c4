// Package tax splits tax-inclusive prices into their exclusive and tax parts.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Decomposer applies a single flat rate (0.18 for 18%) to inclusive prices.
type Decomposer struct {
	rate    decimal.Decimal
	divisor decimal.Decimal
}

// New returns a Decomposer for rate. Negative rates are rejected.
func New(rate decimal.Decimal) (*Decomposer, error) {
	if rate.IsNegative() {
		return nil, fmt.Errorf("tax.New: %s: %w", rate, domain.ErrNegativeTaxRate)
	}
	return &Decomposer{rate: rate, divisor: decimal.NewFromInt(1).Add(rate)}, nil
}

// Rate returns the configured rate.
func (d *Decomposer) Rate() decimal.Decimal { return d.rate }

// Split derives the exclusive unit price and per-unit tax from an inclusive
// unit price: excl = incl / (1 + r), tax = incl - excl. Nothing is rounded.
func (d *Decomposer) Split(inclusive decimal.Decimal) (exclusive, tax decimal.Decimal) {
	exclusive = inclusive.Div(d.divisor)
	return exclusive, inclusive.Sub(exclusive)
}

// Line decomposes one normalized item into an invoice line.
func (d *Decomposer) Line(item domain.NormalizedItem) domain.InvoiceLineItem {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	excl, perUnit := d.Split(item.UnitPrice)
	q := decimal.NewFromInt(int64(qty))

	return domain.InvoiceLineItem{
		Name:             item.Name,
		Quantity:         qty,
		UnitPriceInclTax: item.UnitPrice,
		UnitPriceExclTax: excl,
		TaxPerUnit:       perUnit,
		LineTotalInclTax: item.UnitPrice.Mul(q),
		LineTaxTotal:     perUnit.Mul(q),
		Size:             item.Size,
		Color:            item.Color,
	}
}

// Lines decomposes every item, preserving order.
func (d *Decomposer) Lines(items []domain.NormalizedItem) []domain.InvoiceLineItem {
	out := make([]domain.InvoiceLineItem, 0, len(items))
	for i := range items {
		out = append(out, d.Line(items[i]))
	}
	return out
}
