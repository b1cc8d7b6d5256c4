// Package invoice assembles a complete tax invoice from a stored order.
package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/money"
	"storefront/internal/normalize"
	"storefront/internal/tax"
	"storefront/internal/words"
)

// Observer receives one call per assembled invoice.
type Observer interface {
	ObserveInvoice(lines int, mismatch bool)
}

type nopObserver struct{}

func (nopObserver) ObserveInvoice(int, bool) {}

// Option customizes a Builder.
type Option func(*Builder)

// WithObserver reports each build to o.
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithNormalizer replaces the default item normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// Builder turns a RawOrder into an InvoiceDocument. It holds no per-order
// state and is safe for concurrent use.
type Builder struct {
	settings   Settings
	decomposer *tax.Decomposer
	normalizer *normalize.Normalizer
	words      words.Converter
	log        logrus.FieldLogger
	observer   Observer
}

// NewBuilder validates settings and returns a Builder.
func NewBuilder(settings Settings, log logrus.FieldLogger, opts ...Option) (*Builder, error) {
	dec, err := tax.New(settings.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invoice.NewBuilder: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	b := &Builder{
		settings:   settings,
		decomposer: dec,
		normalizer: normalize.New(normalize.DefaultKeyPaths),
		words:      words.Converter{MajorUnit: settings.MajorUnit, MinorUnit: settings.MinorUnit},
		log:        log,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Settings returns the builder configuration.
func (b *Builder) Settings() Settings { return b.settings }

// KeyPathsVersion reports the version of the item key-path table in use.
func (b *Builder) KeyPathsVersion() int { return b.normalizer.Version() }

// Items runs only the normalization step.
func (b *Builder) Items(order *domain.RawOrder) []domain.NormalizedItem {
	return b.normalizer.Normalize(order.Items)
}

// Build computes the invoice for order. Malformed item or address payloads
// degrade to empty values; only a negative shipping charge is an error.
func (b *Builder) Build(order *domain.RawOrder) (*domain.InvoiceDocument, error) {
	items := b.normalizer.Normalize(order.Items)
	lines := b.decomposer.Lines(items)

	subtotal, totalTax := decimal.Zero, decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].LineTotalInclTax)
		totalTax = totalTax.Add(lines[i].LineTaxTotal)
	}

	shipping := decimal.Zero
	if order.ShippingCost.Valid {
		shipping = order.ShippingCost.Decimal
	}
	if shipping.IsNegative() {
		return nil, fmt.Errorf("invoice.Build: order %s shipping %s: %w", order.ID, shipping, domain.ErrNegativeAmount)
	}

	grand := subtotal.Add(shipping)
	inWords, err := b.words.Phrase(grand)
	if err != nil {
		return nil, fmt.Errorf("invoice.Build: %w", err)
	}

	addr := ParseAddress(order.ShippingAddress)
	doc := &domain.InvoiceDocument{
		OrderID:           order.ID,
		InvoiceNumber:     b.settings.InvoicePrefix + order.ID,
		OrderDate:         order.CreatedAt,
		Seller:            b.settings.Seller,
		Buyer:             buyer(order, addr),
		LineItems:         lines,
		SubtotalInclTax:   subtotal,
		SubtotalExclTax:   subtotal.Sub(totalTax),
		TotalTax:          totalTax,
		TaxRate:           b.decomposer.Rate(),
		ShippingCost:      shipping,
		GrandTotal:        grand,
		GrandTotalInWords: inWords,
		Currency:          b.settings.Currency,
		OrderStatus:       order.Status,
		PaymentStatus:     order.PaymentStatus,
		Reconciliation:    b.reconcile(order, grand),
	}

	b.observer.ObserveInvoice(len(lines), doc.Reconciliation.Mismatch)
	b.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"lines":       len(lines),
		"grand_total": money.Fixed(grand),
	}).Debug("invoice.Build: invoice assembled")

	return doc, nil
}

// reconcile compares the stored order total with the computed one at display
// precision. A missing stored total is never a mismatch.
func (b *Builder) reconcile(order *domain.RawOrder, grand decimal.Decimal) domain.Reconciliation {
	rec := domain.Reconciliation{PersistedTotal: order.Total}
	if !order.Total.Valid {
		return rec
	}
	rec.Difference = money.Round(grand).Sub(money.Round(order.Total.Decimal))
	rec.Mismatch = rec.Difference.Abs().GreaterThan(b.settings.ReconcileTolerance)
	if rec.Mismatch {
		b.log.WithFields(logrus.Fields{
			"order_id":        order.ID,
			"computed_total":  money.Fixed(grand),
			"persisted_total": money.Fixed(order.Total.Decimal),
			"difference":      money.Fixed(rec.Difference),
		}).Warn("invoice.Build: computed total differs from stored order total")
	}
	return rec
}

func buyer(order *domain.RawOrder, addr *domain.Address) domain.BuyerBlock {
	b := domain.BuyerBlock{
		Name:            strings.TrimSpace(order.CustomerName),
		Email:           strings.TrimSpace(order.CustomerEmail),
		Phone:           strings.TrimSpace(order.CustomerPhone),
		ShippingAddress: addr,
	}
	if addr != nil {
		if b.Name == "" {
			b.Name = addr.Name
		}
		if b.Phone == "" {
			b.Phone = addr.Phone
		}
	}
	return b
}
