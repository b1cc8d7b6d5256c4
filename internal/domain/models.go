package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawOrder is an order record exactly as the order store returns it. Items and
// ShippingAddress may hold either structured JSON or a JSON-encoded string of it.
type RawOrder struct {
	ID              string              `db:"id" json:"id"`
	CustomerName    string              `db:"customer_name" json:"customer_name"`
	CustomerEmail   string              `db:"customer_email" json:"customer_email"`
	CustomerPhone   string              `db:"customer_phone" json:"customer_phone"`
	ShippingAddress json.RawMessage     `db:"shipping_address" json:"shipping_address"`
	Total           decimal.NullDecimal `db:"total" json:"total"`
	Subtotal        decimal.NullDecimal `db:"subtotal" json:"subtotal"`
	ShippingCost    decimal.NullDecimal `db:"shipping_cost" json:"shipping_cost"`
	Status          string              `db:"status" json:"status"`
	PaymentStatus   string              `db:"payment_status" json:"payment_status"`
	Items           json.RawMessage     `db:"items" json:"items"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}

// NormalizedItem is the canonical shape of one purchasable line, whatever
// writer produced the raw record.
type NormalizedItem struct {
	Name      string          `json:"name"`
	Images    []string        `json:"images"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	ProductID *string         `json:"product_id,omitempty"`
}

// Address is a buyer shipping address.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Lines returns the non-empty address lines in print order.
func (a *Address) Lines() []string {
	if a == nil {
		return nil
	}
	var lines []string
	for _, l := range []string{a.Line1, a.Line2} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	cityLine := a.City
	if a.State != "" {
		if cityLine != "" {
			cityLine += ", "
		}
		cityLine += a.State
	}
	if a.PostalCode != "" {
		if cityLine != "" {
			cityLine += " - "
		}
		cityLine += a.PostalCode
	}
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// SellerBlock is the fixed seller identity printed on every invoice.
type SellerBlock struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin"`
}

// BuyerBlock identifies the customer an invoice is issued to.
type BuyerBlock struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

// InvoiceLineItem is a NormalizedItem with its tax decomposition applied.
type InvoiceLineItem struct {
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	UnitPriceInclTax decimal.Decimal `json:"unit_price_incl_tax"`
	UnitPriceExclTax decimal.Decimal `json:"unit_price_excl_tax"`
	TaxPerUnit       decimal.Decimal `json:"tax_per_unit"`
	LineTotalInclTax decimal.Decimal `json:"line_total_incl_tax"`
	LineTaxTotal     decimal.Decimal `json:"line_tax_total"`
	Size             string          `json:"size,omitempty"`
	Color            string          `json:"color,omitempty"`
}

// Reconciliation compares the computed grand total with the total stored on the order.
type Reconciliation struct {
	PersistedTotal decimal.NullDecimal `json:"persisted_total"`
	Difference     decimal.Decimal     `json:"difference"`
	Mismatch       bool                `json:"mismatch"`
}

// InvoiceDocument is the fully resolved, renderer-agnostic tax invoice for one order.
type InvoiceDocument struct {
	OrderID           string            `json:"order_id"`
	InvoiceNumber     string            `json:"invoice_number"`
	OrderDate         time.Time         `json:"order_date"`
	Seller            SellerBlock       `json:"seller"`
	Buyer             BuyerBlock        `json:"buyer"`
	LineItems         []InvoiceLineItem `json:"line_items"`
	SubtotalInclTax   decimal.Decimal   `json:"subtotal_incl_tax"`
	SubtotalExclTax   decimal.Decimal   `json:"subtotal_excl_tax"`
	TotalTax          decimal.Decimal   `json:"total_tax"`
	TaxRate           decimal.Decimal   `json:"tax_rate"`
	ShippingCost      decimal.Decimal   `json:"shipping_cost"`
	GrandTotal        decimal.Decimal   `json:"grand_total"`
	GrandTotalInWords string            `json:"grand_total_in_words"`
	Currency          string            `json:"currency"`
	OrderStatus       string            `json:"order_status"`
	PaymentStatus     string            `json:"payment_status"`
	Reconciliation    Reconciliation    `json:"reconciliation"`
}

// FreeShipping reports whether the shipping line should read "FREE".
func (d *InvoiceDocument) FreeShipping() bool {
	return d.ShippingCost.IsZero()
}

// Artifact is a rendered invoice file ready to hand to the caller.
type Artifact struct {
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	Format      ExportFormat `json:"format"`
	Data        []byte       `json:"-"`
	Location    string       `json:"location,omitempty"`
	DownloadURL string       `json:"download_url,omitempty"`
}
