package csvexport

import (
	"context"
	"encoding/csv"
	"io"

	"storefront/internal/domain"
	"storefront/internal/render"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting an invoice as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the invoice header block: number, date, parties.
func (w *Writer) WriteHeader(v *render.View) error {
	rows := [][]string{
		{v.Title},
		{"Invoice Number", v.InvoiceNumber},
		{"Order ID", v.OrderID},
		{"Order Date", v.OrderDate},
		{"Order Status", v.OrderStatus},
		{"Payment Status", v.PaymentStatus},
		append([]string{"Sold By"}, v.Seller...),
		append([]string{"Billed To"}, v.Buyer...),
	}
	if len(v.ShipTo) > 0 {
		rows = append(rows, append([]string{"Ship To"}, v.ShipTo...))
	}
	rows = append(rows, []string{})
	return w.csv.WriteAll(rows)
}

// WriteLineItems writes the column header row followed by one row per item.
func (w *Writer) WriteLineItems(rows []render.Row) error {
	if err := w.csv.Write(render.Columns); err != nil {
		return err
	}
	for i := range rows {
		if err := w.csv.Write(rows[i].Cells()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotals writes the summary block aligned under the amount column.
func (w *Writer) WriteTotals(v *render.View) error {
	pad := len(render.Columns) - 2
	if err := w.csv.Write([]string{}); err != nil {
		return err
	}
	for _, t := range v.Totals {
		row := make([]string, pad, pad+2)
		row = append(row, t.Label, t.Value)
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return w.csv.Write([]string{"Amount in Words", v.AmountInWords})
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Renderer produces a spreadsheet-friendly CSV invoice.
type Renderer struct {
	symbol string
	bom    bool
}

// NewRenderer returns a CSV renderer. bom prefixes the UTF-8 byte order mark.
func NewRenderer(currencySymbol string, bom bool) *Renderer {
	return &Renderer{symbol: currencySymbol, bom: bom}
}

func (r *Renderer) Format() domain.ExportFormat { return domain.ExportFormatCSV }
func (r *Renderer) ContentType() string         { return "text/csv; charset=utf-8" }
func (r *Renderer) Extension() string           { return "csv" }

func (r *Renderer) Render(_ context.Context, doc *domain.InvoiceDocument, out io.Writer) error {
	if r.bom {
		if _, err := out.Write(BOM); err != nil {
			return err
		}
	}
	v := render.NewView(doc, r.symbol)
	w := NewWriter(out)
	if err := w.WriteHeader(&v); err != nil {
		return err
	}
	if err := w.WriteLineItems(v.Rows); err != nil {
		return err
	}
	if err := w.WriteTotals(&v); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
