package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"storefront/internal/port"
)

type noopSender struct {
	log logrus.FieldLogger
}

// NewNoopSender creates a no-op InvoiceMailer that logs what would have been sent.
func NewNoopSender(log logrus.FieldLogger) port.InvoiceMailer {
	return &noopSender{log: log}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	fields := logrus.Fields{
		"to":             msg.ToEmail,
		"invoice_number": msg.InvoiceNumber,
		"download_url":   msg.DownloadURL,
	}
	if msg.Attachment != nil {
		fields["attachment"] = msg.Attachment.Filename
	}
	s.log.WithFields(fields).Info("[NOOP EMAIL] invoice email")
	return nil
}
