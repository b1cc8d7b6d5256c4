package port

import (
	"context"

	"storefront/internal/domain"
)

// InvoiceEmail is one invoice notification to a buyer.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	InvoiceNumber string
	GrandTotal    string
	DownloadURL   string
	Attachment    *domain.Artifact
}

// InvoiceMailer defines the contract for sending invoice e-mails.
type InvoiceMailer interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
