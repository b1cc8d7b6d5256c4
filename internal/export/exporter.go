// Package export renders invoice documents through pluggable renderers and
// optionally hands the result to object storage.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/port"
)

// Outcome reports one export attempt. On failure Artifact is nil and Reason
// says which stage failed.
type Outcome struct {
	OK       bool
	Artifact *domain.Artifact
	Reason   domain.FailureReason
	Err      error
}

func failed(reason domain.FailureReason, err error) Outcome {
	return Outcome{Reason: reason, Err: err}
}

// Observer receives one call per export attempt.
type Observer interface {
	ObserveExport(format domain.ExportFormat, reason domain.FailureReason, took time.Duration)
}

// Options configures an Exporter.
type Options struct {
	Brand         string
	Bucket        string
	KeyPrefix     string
	PresignExpiry time.Duration
	// Upload makes Export deliver every artifact to storage.
	Upload  bool
	Timeout time.Duration
}

// Exporter dispatches to the renderer registered for a format.
type Exporter struct {
	renderers map[domain.ExportFormat]port.DocumentRenderer
	storage   port.ObjectStorage
	opts      Options
	log       logrus.FieldLogger
	observer  Observer
}

// NewExporter registers renderers by their Format. storage may be nil, in
// which case nothing is ever uploaded.
func NewExporter(opts Options, storage port.ObjectStorage, log logrus.FieldLogger, observer Observer, renderers ...port.DocumentRenderer) *Exporter {
	m := make(map[domain.ExportFormat]port.DocumentRenderer, len(renderers))
	for _, r := range renderers {
		if r != nil {
			m[r.Format()] = r
		}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Exporter{renderers: m, storage: storage, opts: opts, log: log, observer: observer}
}

// Supports reports whether a renderer is registered for format.
func (e *Exporter) Supports(format domain.ExportFormat) bool {
	_, ok := e.renderers[format]
	return ok
}

// CanDeliver reports whether artifacts can be uploaded.
func (e *Exporter) CanDeliver() bool { return e.storage != nil }

// Export renders doc and, when uploads are enabled, stores the artifact.
func (e *Exporter) Export(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat) Outcome {
	return e.run(ctx, doc, format, e.opts.Upload)
}

// Publish renders doc and always uploads it, returning a presigned link.
func (e *Exporter) Publish(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat) Outcome {
	return e.run(ctx, doc, format, true)
}

func (e *Exporter) run(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat, deliver bool) Outcome {
	start := time.Now()
	out := e.export(ctx, doc, format, deliver)
	if e.observer != nil {
		e.observer.ObserveExport(format, out.Reason, time.Since(start))
	}

	entry := e.log.WithFields(logrus.Fields{"order_id": doc.OrderID, "format": format})
	if !out.OK {
		entry.WithError(out.Err).WithField("reason", out.Reason).Error("export.Export: invoice export failed")
	} else {
		entry.WithField("bytes", len(out.Artifact.Data)).Info("export.Export: invoice exported")
	}
	return out
}

func (e *Exporter) export(ctx context.Context, doc *domain.InvoiceDocument, format domain.ExportFormat, deliver bool) Outcome {
	r, ok := e.renderers[format]
	if !ok {
		return failed(domain.FailureRendererUnavailable, fmt.Errorf("export: %s: %w", format, domain.ErrRendererUnavailable))
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	data, err := render(ctx, r, doc)
	if err != nil {
		return failed(domain.FailureRendererError, err)
	}

	art := &domain.Artifact{
		Filename:    BuildFilename(e.opts.Brand, doc.OrderID, r.Extension()),
		ContentType: r.ContentType(),
		Format:      format,
		Data:        data,
	}

	if deliver {
		if err := e.deliver(ctx, doc, art); err != nil {
			return failed(domain.FailureDeliveryFailed, err)
		}
	}
	return Outcome{OK: true, Artifact: art}
}

// render buffers the whole document so a failing renderer leaves nothing behind.
func render(ctx context.Context, r port.DocumentRenderer, doc *domain.InvoiceDocument) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export: render %s: %w", r.Format(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			data, err = nil, fmt.Errorf("export: render %s panicked: %v", r.Format(), p)
		}
	}()

	var buf bytes.Buffer
	if err := r.Render(ctx, doc, &buf); err != nil {
		return nil, fmt.Errorf("export: render %s: %w", r.Format(), err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("export: render %s: empty document", r.Format())
	}
	return buf.Bytes(), nil
}

func (e *Exporter) deliver(ctx context.Context, doc *domain.InvoiceDocument, art *domain.Artifact) error {
	if e.storage == nil {
		return fmt.Errorf("export: no object storage configured: %w", domain.ErrUploadFailed)
	}
	key := objectKey(e.opts.KeyPrefix, doc.OrderID, art.Filename)
	out, err := e.storage.Upload(ctx, port.UploadInput{
		Bucket:      e.opts.Bucket,
		Key:         key,
		Body:        bytes.NewReader(art.Data),
		Size:        int64(len(art.Data)),
		ContentType: art.ContentType,
		Filename:    art.Filename,
		Metadata: map[string]string{
			"order-id":       doc.OrderID,
			"invoice-number": doc.InvoiceNumber,
			"format":         string(art.Format),
		},
	})
	if err != nil {
		return fmt.Errorf("export: upload %s: %w: %w", key, domain.ErrUploadFailed, err)
	}

	url, err := e.storage.GetPresignedURL(ctx, port.PresignInput{
		Bucket:   e.opts.Bucket,
		Key:      key,
		Filename: art.Filename,
		Expiry:   e.opts.PresignExpiry,
	})
	if err != nil {
		// Do not leave an unreachable object behind.
		_ = e.storage.Delete(ctx, e.opts.Bucket, key)
		return fmt.Errorf("export: presign %s: %w", key, err)
	}
	art.Location = out.Location
	art.DownloadURL = url
	return nil
}
