// Package render holds the presentation model shared by the invoice renderers.
// Every number is formatted here so all file formats print identical values.
package render

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"storefront/internal/domain"
	"storefront/internal/money"
)

// FreeLabel is printed instead of a zero shipping charge.
const FreeLabel = "FREE"

// Row is one printed line item.
type Row struct {
	Index     string `json:"index"`
	Name      string `json:"name"`
	Variant   string `json:"variant"`
	Quantity  string `json:"quantity"`
	UnitExcl  string `json:"unit_excl"`
	UnitIncl  string `json:"unit_incl"`
	Tax       string `json:"tax"`
	LineTotal string `json:"line_total"`
}

// Cells returns the row in Columns order.
func (r Row) Cells() []string {
	return []string{r.Index, r.Name, r.Variant, r.Quantity, r.UnitExcl, r.UnitIncl, r.Tax, r.LineTotal}
}

// Total is one labelled amount in the summary block.
type Total struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Grand bool   `json:"grand"`
}

// View is an InvoiceDocument flattened to display strings.
type View struct {
	Title         string   `json:"title"`
	InvoiceNumber string   `json:"invoice_number"`
	OrderID       string   `json:"order_id"`
	OrderDate     string   `json:"order_date"`
	Seller        []string `json:"seller"`
	Buyer         []string `json:"buyer"`
	ShipTo        []string `json:"ship_to"`
	Rows          []Row    `json:"rows"`
	Totals        []Total  `json:"totals"`
	AmountInWords string   `json:"amount_in_words"`
	OrderStatus   string   `json:"order_status"`
	PaymentStatus string   `json:"payment_status"`
	Mismatch      bool     `json:"mismatch"`
}

// Columns are the line item table headers, in Row.Cells order.
var Columns = []string{"#", "Item", "Variant", "Qty", "Unit Price (excl. tax)", "Unit Price", "Tax", "Amount"}

// NewView formats doc for display with the given currency symbol.
func NewView(doc *domain.InvoiceDocument, symbol string) View {
	amt := func(d decimal.Decimal) string { return money.FormatFor(d, doc.Currency, symbol) }

	v := View{
		Title:         "TAX INVOICE",
		InvoiceNumber: doc.InvoiceNumber,
		OrderID:       doc.OrderID,
		Seller:        sellerLines(doc.Seller),
		Buyer:         buyerLines(doc.Buyer),
		ShipTo:        doc.Buyer.ShippingAddress.Lines(),
		AmountInWords: doc.GrandTotalInWords,
		OrderStatus:   TitleCase(doc.OrderStatus),
		PaymentStatus: TitleCase(doc.PaymentStatus),
		Mismatch:      doc.Reconciliation.Mismatch,
	}
	if !doc.OrderDate.IsZero() {
		v.OrderDate = doc.OrderDate.Format(money.DateLayout)
	}

	v.Rows = make([]Row, 0, len(doc.LineItems))
	for i, li := range doc.LineItems {
		v.Rows = append(v.Rows, Row{
			Index:     strconv.Itoa(i + 1),
			Name:      li.Name,
			Variant:   variant(li.Size, li.Color),
			Quantity:  strconv.Itoa(li.Quantity),
			UnitExcl:  amt(li.UnitPriceExclTax),
			UnitIncl:  amt(li.UnitPriceInclTax),
			Tax:       amt(li.LineTaxTotal),
			LineTotal: amt(li.LineTotalInclTax),
		})
	}

	shipping := FreeLabel
	if !doc.FreeShipping() {
		shipping = amt(doc.ShippingCost)
	}
	v.Totals = []Total{
		{Label: "Taxable Value", Value: amt(doc.SubtotalExclTax)},
		{Label: TaxLabel(doc.TaxRate), Value: amt(doc.TotalTax)},
		{Label: "Subtotal (incl. tax)", Value: amt(doc.SubtotalInclTax)},
		{Label: "Shipping", Value: shipping},
		{Label: "Grand Total", Value: amt(doc.GrandTotal), Grand: true},
	}
	return v
}

// TaxLabel renders a rate such as 0.18 as "GST @ 18%".
func TaxLabel(rate decimal.Decimal) string {
	return "GST @ " + rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// TitleCase turns "payment_pending" into "Payment Pending".
func TitleCase(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	caser := cases.Title(language.Und)
	for i, f := range fields {
		fields[i] = caser.String(f)
	}
	return strings.Join(fields, " ")
}

func variant(size, color string) string {
	var parts []string
	if size != "" {
		parts = append(parts, "Size: "+size)
	}
	if color != "" {
		parts = append(parts, "Color: "+color)
	}
	return strings.Join(parts, ", ")
}

func sellerLines(s domain.SellerBlock) []string {
	lines := nonEmpty(s.Name, s.Address, s.Email, s.Phone)
	if s.GSTIN != "" {
		lines = append(lines, "GSTIN: "+s.GSTIN)
	}
	return lines
}

func buyerLines(b domain.BuyerBlock) []string {
	return nonEmpty(b.Name, b.Email, b.Phone)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
