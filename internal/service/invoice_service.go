package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/export"
	"storefront/internal/invoice"
	"storefront/internal/logger"
	"storefront/internal/money"
	"storefront/internal/normalize"
	"storefront/internal/port"
)

// ItemsView is the normalized item list of one order plus the short preview
// shown in order listings.
type ItemsView struct {
	OrderID         string                  `json:"order_id"`
	Items           []domain.NormalizedItem `json:"items"`
	Preview         []domain.NormalizedItem `json:"preview"`
	More            int                     `json:"more"`
	KeyPathsVersion int                     `json:"key_paths_version"`
}

// EmailReceipt describes a sent invoice e-mail.
type EmailReceipt struct {
	OrderID       string `json:"order_id"`
	InvoiceNumber string `json:"invoice_number"`
	ToEmail       string `json:"to_email"`
	DownloadURL   string `json:"download_url,omitempty"`
	Attached      bool   `json:"attached"`
}

// InvoiceExporter renders documents; export.Exporter satisfies it.
type InvoiceExporter interface {
	Export(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat) export.Outcome
	Publish(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat) export.Outcome
	Supports(format domain.ExportFormat) bool
	CanDeliver() bool
}

// EmailObserver is told about every invoice e-mail attempt.
type EmailObserver interface {
	ObserveEmail(err error)
}

// InvoiceService defines the invoice contract for back-office callers.
type InvoiceService interface {
	GetInvoice(ctx context.Context, orderID string) (*domain.InvoiceDocument, error)
	ListItems(ctx context.Context, orderID string) (*ItemsView, error)
	Export(ctx context.Context, orderID string, format domain.ExportFormat) (*domain.Artifact, error)
	EmailInvoice(ctx context.Context, orderID string, format domain.ExportFormat) (*EmailReceipt, error)
}

type invoiceService struct {
	orders   port.OrderRepository
	builder  *invoice.Builder
	exporter InvoiceExporter
	mailer   port.InvoiceMailer
	cfg      *config.InvoiceConfig
	log      logrus.FieldLogger
	observer EmailObserver
}

// NewInvoiceService creates a new InvoiceService implementation. observer may be nil.
func NewInvoiceService(
	orders port.OrderRepository,
	builder *invoice.Builder,
	exporter InvoiceExporter,
	mailer port.InvoiceMailer,
	cfg *config.InvoiceConfig,
	log logrus.FieldLogger,
	observer EmailObserver,
) InvoiceService {
	return &invoiceService{
		orders:   orders,
		builder:  builder,
		exporter: exporter,
		mailer:   mailer,
		cfg:      cfg,
		log:      log,
		observer: observer,
	}
}

func (s *invoiceService) order(ctx context.Context, orderID string) (*domain.RawOrder, error) {
	if orderID == "" {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, orderID string) (*domain.InvoiceDocument, error) {
	order, err := s.order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	doc, err := s.builder.Build(order)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GetInvoice: %w", err)
	}
	return doc, nil
}

func (s *invoiceService) ListItems(ctx context.Context, orderID string) (*ItemsView, error) {
	order, err := s.order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := s.builder.Items(order)
	preview := normalize.Preview(items, normalize.PreviewSize)
	return &ItemsView{
		OrderID:         order.ID,
		Items:           items,
		Preview:         preview,
		More:            len(items) - len(preview),
		KeyPathsVersion: s.builder.KeyPathsVersion(),
	}, nil
}

func (s *invoiceService) Export(ctx context.Context, orderID string, format domain.ExportFormat) (*domain.Artifact, error) {
	if !s.exporter.Supports(format) {
		return nil, domain.ErrUnsupportedFormat
	}
	doc, err := s.GetInvoice(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := s.exporter.Export(ctx, doc, format)
	if !out.OK {
		return nil, exportError(out)
	}
	return out.Artifact, nil
}

func (s *invoiceService) EmailInvoice(ctx context.Context, orderID string, format domain.ExportFormat) (*EmailReceipt, error) {
	if !s.exporter.Supports(format) {
		return nil, domain.ErrUnsupportedFormat
	}
	doc, err := s.GetInvoice(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc.Buyer.Email == "" {
		return nil, domain.ErrMissingBuyerEmail
	}

	var out export.Outcome
	if s.exporter.CanDeliver() {
		out = s.exporter.Publish(ctx, doc, format)
	} else {
		out = s.exporter.Export(ctx, doc, format)
	}
	if !out.OK {
		return nil, exportError(out)
	}

	msg := port.InvoiceEmail{
		ToEmail:       doc.Buyer.Email,
		ToName:        doc.Buyer.Name,
		InvoiceNumber: doc.InvoiceNumber,
		GrandTotal:    money.FormatFor(doc.GrandTotal, doc.Currency, s.cfg.CurrencySymbol),
		DownloadURL:   out.Artifact.DownloadURL,
		Attachment:    out.Artifact,
	}
	err = s.mailer.SendInvoiceEmail(ctx, msg)
	if s.observer != nil {
		s.observer.ObserveEmail(err)
	}
	if err != nil {
		logger.WithContext(ctx, s.log).WithError(err).
			WithField("order_id", orderID).
			Error("invoiceService.EmailInvoice: sending invoice email failed")
		return nil, fmt.Errorf("invoiceService.EmailInvoice: %w: %w", domain.ErrEmailFailed, err)
	}

	logger.WithContext(ctx, s.log).WithFields(logrus.Fields{
		"order_id": orderID,
		"format":   format,
	}).Info("invoiceService.EmailInvoice: invoice emailed")

	return &EmailReceipt{
		OrderID:       doc.OrderID,
		InvoiceNumber: doc.InvoiceNumber,
		ToEmail:       doc.Buyer.Email,
		DownloadURL:   out.Artifact.DownloadURL,
		Attached:      true,
	}, nil
}

// exportError folds an unsuccessful outcome into ErrExportFailed.
func exportError(out export.Outcome) error {
	if errors.Is(out.Err, domain.ErrRendererUnavailable) {
		return fmt.Errorf("%w: %w", domain.ErrExportFailed, out.Err)
	}
	return fmt.Errorf("%w (%s): %w", domain.ErrExportFailed, out.Reason, out.Err)
}
