package export

import (
	"storefront/internal/csvexport"
	"storefront/internal/port"
	"storefront/internal/pdfexport"
	"storefront/internal/xlsxexport"
)

// StandardRenderers returns the PDF, XLSX and CSV renderers. The CSV output
// carries a UTF-8 BOM so spreadsheet tools detect the encoding.
func StandardRenderers(currencySymbol, pdfPageSize string) []port.DocumentRenderer {
	return []port.DocumentRenderer{
		pdfexport.NewRenderer(currencySymbol, pdfPageSize),
		xlsxexport.NewRenderer(currencySymbol),
		csvexport.NewRenderer(currencySymbol, true),
	}
}
