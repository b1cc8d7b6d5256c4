// Package xlsxexport renders invoices as Excel workbooks.
package xlsxexport

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"storefront/internal/domain"
	"storefront/internal/money"
	"storefront/internal/render"
)

// SheetName is the single worksheet in the workbook.
const SheetName = "Invoice"

// amountFormat shows two decimals with thousands separators.
const amountFormat = "#,##0.00"

// Renderer writes an .xlsx workbook. Amounts are stored as numbers rounded to
// two places so the sheet can be summed; labels come from render.View.
type Renderer struct {
	symbol string
}

// NewRenderer returns an XLSX renderer that labels amounts with symbol.
func NewRenderer(currencySymbol string) *Renderer {
	return &Renderer{symbol: currencySymbol}
}

func (r *Renderer) Format() domain.ExportFormat { return domain.ExportFormatXLSX }
func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (r *Renderer) Extension() string { return "xlsx" }

type styles struct {
	title  int
	label  int
	header int
	amount int
	grand  int
}

func (r *Renderer) Render(_ context.Context, doc *domain.InvoiceDocument, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	v := render.NewView(doc, r.symbol)
	sw := &sheetWriter{f: f}

	sw.set(1, 1, v.Title, st.title)
	sw.merge(1, 1, len(render.Columns), 1)

	row := 3
	for _, kv := range [][2]string{
		{"Invoice Number", v.InvoiceNumber},
		{"Order ID", v.OrderID},
		{"Order Date", v.OrderDate},
		{"Order Status", v.OrderStatus},
		{"Payment Status", v.PaymentStatus},
	} {
		sw.set(1, row, kv[0], st.label)
		sw.set(2, row, kv[1], 0)
		row++
	}

	row++
	top := row
	row = sw.block(1, row, "Sold By", v.Seller, st.label)
	end := sw.block(4, top, "Billed To", v.Buyer, st.label)
	if len(v.ShipTo) > 0 {
		end = max(end, sw.block(7, top, "Ship To", v.ShipTo, st.label))
	}
	row = max(row, end) + 1

	for i, h := range render.Columns {
		sw.set(i+1, row, h, st.header)
	}
	row++
	for i := range doc.LineItems {
		li := doc.LineItems[i]
		vr := v.Rows[i]
		sw.set(1, row, i+1, 0)
		sw.set(2, row, vr.Name, 0)
		sw.set(3, row, vr.Variant, 0)
		sw.set(4, row, li.Quantity, 0)
		sw.set(5, row, amount(li.UnitPriceExclTax), st.amount)
		sw.set(6, row, amount(li.UnitPriceInclTax), st.amount)
		sw.set(7, row, amount(li.LineTaxTotal), st.amount)
		sw.set(8, row, amount(li.LineTotalInclTax), st.amount)
		row++
	}

	row++
	totals := []decimal.Decimal{doc.SubtotalExclTax, doc.TotalTax, doc.SubtotalInclTax, doc.ShippingCost, doc.GrandTotal}
	for i, t := range v.Totals {
		labelStyle, valueStyle := st.label, st.amount
		if t.Grand {
			valueStyle = st.grand
		}
		sw.set(7, row, t.Label, labelStyle)
		if t.Value == render.FreeLabel {
			sw.set(8, row, t.Value, labelStyle)
		} else {
			sw.set(8, row, amount(totals[i]), valueStyle)
		}
		row++
	}
	sw.set(1, row+1, "Amount in Words", st.label)
	sw.set(2, row+1, v.AmountInWords, 0)
	sw.set(1, row+2, "Currency", st.label)
	sw.set(2, row+2, doc.Currency, 0)

	for col, width := range map[string]float64{"A": 18, "B": 32, "C": 22, "D": 8, "E": 20, "F": 14, "G": 22, "H": 16} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("xlsxexport: column width: %w", err)
		}
	}

	if sw.err != nil {
		return sw.err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return nil
}

func amount(d decimal.Decimal) float64 {
	return money.Round(d).InexactFloat64()
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	mk := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(s)
		return id
	}
	numFmt := amountFormat
	st.title = mk(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	st.label = mk(&excelize.Style{Font: &excelize.Font{Bold: true}})
	st.header = mk(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	st.amount = mk(&excelize.Style{CustomNumFmt: &numFmt})
	st.grand = mk(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return styles{}, fmt.Errorf("xlsxexport: style: %w", err)
	}
	return st, nil
}

// sheetWriter keeps the first error so the layout code stays linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (s *sheetWriter) set(col, row int, value any, style int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellValue(SheetName, cell, value); err != nil {
		s.err = fmt.Errorf("xlsxexport: set %s: %w", cell, err)
		return
	}
	if style != 0 {
		if err := s.f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			s.err = fmt.Errorf("xlsxexport: style %s: %w", cell, err)
		}
	}
}

func (s *sheetWriter) merge(c1, r1, c2, r2 int) {
	if s.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(c1, r1)
	to, _ := excelize.CoordinatesToCellName(c2, r2)
	if err := s.f.MergeCell(SheetName, from, to); err != nil {
		s.err = fmt.Errorf("xlsxexport: merge: %w", err)
	}
}

// block writes a heading and its lines downwards and returns the next free row.
func (s *sheetWriter) block(col, row int, heading string, lines []string, style int) int {
	s.set(col, row, heading, style)
	row++
	for _, l := range lines {
		s.set(col, row, l, 0)
		row++
	}
	return row
}
