package render_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/render"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDoc() *domain.InvoiceDocument {
	return &domain.InvoiceDocument{
		OrderID:       "1042",
		InvoiceNumber: "INV-1042",
		OrderDate:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Seller:        domain.SellerBlock{Name: "Storefront Retail", GSTIN: "29ABCDE1234F1Z5"},
		Buyer: domain.BuyerBlock{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			ShippingAddress: &domain.Address{
				Line1: "12 MG Road", City: "Bengaluru", State: "Karnataka", PostalCode: "560001",
			},
		},
		LineItems: []domain.InvoiceLineItem{
			{
				Name: "Silk Saree", Quantity: 2, Size: "Free", Color: "Red",
				UnitPriceInclTax: dec("590"), UnitPriceExclTax: dec("500"), TaxPerUnit: dec("90"),
				LineTotalInclTax: dec("1180"), LineTaxTotal: dec("180"),
			},
		},
		SubtotalInclTax:   dec("1180"),
		SubtotalExclTax:   dec("1000"),
		TotalTax:          dec("180"),
		TaxRate:           dec("0.18"),
		ShippingCost:      decimal.Zero,
		GrandTotal:        dec("1180"),
		GrandTotalInWords: "Rupees One Thousand One Hundred Eighty Only",
		Currency:          "INR",
		OrderStatus:       "out_for_delivery",
		PaymentStatus:     "paid",
	}
}

func TestNewView(t *testing.T) {
	v := render.NewView(sampleDoc(), "₹")

	assert.Equal(t, "05 Mar 2025", v.OrderDate)
	assert.Equal(t, "INV-1042", v.InvoiceNumber)
	assert.Equal(t, []string{"Storefront Retail", "GSTIN: 29ABCDE1234F1Z5"}, v.Seller)
	assert.Equal(t, []string{"Asha Rao", "asha@example.com"}, v.Buyer)
	assert.Equal(t, []string{"12 MG Road", "Bengaluru, Karnataka - 560001"}, v.ShipTo)
	assert.Equal(t, "Out For Delivery", v.OrderStatus)

	require.Len(t, v.Rows, 1)
	assert.Equal(t, []string{"1", "Silk Saree", "Size: Free, Color: Red", "2", "₹500.00", "₹590.00", "₹180.00", "₹1,180.00"}, v.Rows[0].Cells())

	require.Len(t, v.Totals, 5)
	assert.Equal(t, "GST @ 18%", v.Totals[1].Label)
	assert.Equal(t, render.FreeLabel, v.Totals[3].Value)
	assert.Equal(t, "₹1,180.00", v.Totals[4].Value)
	assert.True(t, v.Totals[4].Grand)
}

func TestNewView_PaidShipping(t *testing.T) {
	doc := sampleDoc()
	doc.ShippingCost = dec("49")
	doc.GrandTotal = dec("1229")
	doc.OrderDate = time.Time{}
	doc.Buyer.ShippingAddress = nil

	v := render.NewView(doc, "₹")
	assert.Equal(t, "₹49.00", v.Totals[3].Value)
	assert.Equal(t, "₹1,229.00", v.Totals[4].Value)
	assert.Empty(t, v.OrderDate)
	assert.Empty(t, v.ShipTo)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Payment Pending", render.TitleCase("payment_pending"))
	assert.Equal(t, "Paid", render.TitleCase("PAID"))
	assert.Equal(t, "", render.TitleCase(""))

	got := render.TitleCase("über_fällig")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Über Fällig", got)
	assert.Equal(t, "Éxpédié", render.TitleCase("ÉXPÉDIÉ"))
}
