// Package pdfexport renders invoices as PDF using pdfcpu's JSON page
// description API.
package pdfexport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"storefront/internal/domain"
	"storefront/internal/render"
)

// fallbackSymbol replaces currency symbols the standard PDF fonts cannot draw.
const fallbackSymbol = "Rs. "

var disableConfigDir sync.Once

// Renderer writes a PDF invoice.
type Renderer struct {
	symbol string
	paper  string
}

// NewRenderer returns a PDF renderer. pageSize is a pdfcpu paper name such as
// "A4" or "Letter"; portrait orientation is always used.
func NewRenderer(currencySymbol, pageSize string) *Renderer {
	disableConfigDir.Do(func() { model.ConfigPath = "disable" })
	return &Renderer{symbol: pdfSymbol(currencySymbol), paper: paperName(pageSize)}
}

func (r *Renderer) Format() domain.ExportFormat { return domain.ExportFormatPDF }
func (r *Renderer) ContentType() string         { return "application/pdf" }
func (r *Renderer) Extension() string           { return "pdf" }

func (r *Renderer) Render(ctx context.Context, doc *domain.InvoiceDocument, w io.Writer) error {
	desc, err := r.Describe(doc)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	conf := model.NewDefaultConfiguration()
	if err := api.Create(nil, bytes.NewReader(desc), w, conf); err != nil {
		return fmt.Errorf("pdfexport: create: %w", err)
	}
	return nil
}

// Describe returns the JSON page description for doc.
func (r *Renderer) Describe(doc *domain.InvoiceDocument) ([]byte, error) {
	v := render.NewView(doc, r.symbol)
	toLatin1(&v)
	data, err := json.Marshal(buildDescriptor(&v, r.paper))
	if err != nil {
		return nil, fmt.Errorf("pdfexport: encode description: %w", err)
	}
	return data, nil
}

func paperName(size string) string {
	s := strings.TrimSpace(size)
	if s == "" {
		s = "A4"
	}
	if strings.HasSuffix(s, "P") || strings.HasSuffix(s, "L") {
		return s
	}
	return s + "P"
}

// pdfSymbol keeps symbols the WinAnsi encoded core fonts can draw.
func pdfSymbol(symbol string) string {
	for _, r := range symbol {
		if r > unicode.MaxLatin1 {
			return fallbackSymbol
		}
	}
	return symbol
}

// toLatin1 replaces characters outside Latin-1 in free text fields.
func toLatin1(v *render.View) {
	for _, lines := range [][]string{v.Seller, v.Buyer, v.ShipTo} {
		for i := range lines {
			lines[i] = latin1(lines[i])
		}
	}
	for i := range v.Rows {
		v.Rows[i].Name = latin1(v.Rows[i].Name)
		v.Rows[i].Variant = latin1(v.Rows[i].Variant)
	}
	v.AmountInWords = latin1(v.AmountInWords)
}

func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxLatin1 {
			return '?'
		}
		return r
	}, s)
}
