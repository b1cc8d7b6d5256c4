package csvexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/render"
)

func testDoc() *domain.InvoiceDocument {
	d := decimal.RequireFromString
	return &domain.InvoiceDocument{
		OrderID:       "1042",
		InvoiceNumber: "INV-1042",
		OrderDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Seller:        domain.SellerBlock{Name: "Seller Corp"},
		Buyer:         domain.BuyerBlock{Name: "Buyer, Inc", Email: "b@example.com"},
		LineItems: []domain.InvoiceLineItem{
			{Name: "Item A", Quantity: 2, UnitPriceInclTax: d("590"), UnitPriceExclTax: d("500"),
				TaxPerUnit: d("90"), LineTotalInclTax: d("1180"), LineTaxTotal: d("180")},
			{Name: "Item B", Quantity: 1, UnitPriceInclTax: d("1000"), UnitPriceExclTax: d("847.4576"),
				TaxPerUnit: d("152.5424"), LineTotalInclTax: d("1000"), LineTaxTotal: d("152.5424")},
		},
		SubtotalInclTax:   d("2180"),
		SubtotalExclTax:   d("1847.4576"),
		TotalTax:          d("332.5424"),
		TaxRate:           d("0.18"),
		GrandTotal:        d("2180"),
		GrandTotalInWords: "Rupees Two Thousand One Hundred Eighty Only",
		Currency:          "INR",
		OrderStatus:       "delivered",
		PaymentStatus:     "paid",
	}
}

func TestWriteLineItems(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	v := render.NewView(testDoc(), "₹")
	require.NoError(t, w.WriteLineItems(v.Rows))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, render.Columns, rows[0])
	assert.Equal(t, "Item A", rows[1][1])
	assert.Equal(t, "₹1,180.00", rows[1][7])
	assert.Equal(t, "₹152.54", rows[2][6])
}

func TestRender_FullDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("₹", true).Render(context.Background(), testDoc(), &buf))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	r := csv.NewReader(bytes.NewReader(data[len(BOM):]))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"TAX INVOICE"}, rows[0])
	assert.Equal(t, []string{"Invoice Number", "INV-1042"}, rows[1])
	assert.Equal(t, []string{"Order Date", "15 Jan 2025"}, rows[3])
	assert.Equal(t, []string{"Billed To", "Buyer, Inc", "b@example.com"}, rows[7])

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"Amount in Words", "Rupees Two Thousand One Hundred Eighty Only"}, last)

	shipping := rows[len(rows)-3]
	assert.Equal(t, "Shipping", shipping[len(shipping)-2])
	assert.Equal(t, render.FreeLabel, shipping[len(shipping)-1])

	grand := rows[len(rows)-2]
	assert.Equal(t, "₹2,180.00", grand[len(grand)-1])
}

func TestRenderer_Metadata(t *testing.T) {
	r := NewRenderer("₹", false)
	assert.Equal(t, domain.ExportFormatCSV, r.Format())
	assert.Equal(t, "csv", r.Extension())
	assert.Contains(t, r.ContentType(), "text/csv")
}
