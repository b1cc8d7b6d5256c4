package port

import (
	"context"
	"io"

	"storefront/internal/domain"
)

// DocumentRenderer writes an invoice document in one file format.
type DocumentRenderer interface {
	Format() domain.ExportFormat
	ContentType() string
	Extension() string
	Render(ctx context.Context, doc *domain.InvoiceDocument, w io.Writer) error
}
