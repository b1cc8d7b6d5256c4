package export_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/export"
	"storefront/internal/port"
	"storefront/mocks"
)

type recordingObserver struct {
	reasons []domain.FailureReason
}

func (r *recordingObserver) ObserveExport(_ domain.ExportFormat, reason domain.FailureReason, _ time.Duration) {
	r.reasons = append(r.reasons, reason)
}

func newRenderer(format domain.ExportFormat, ext, contentType string) *mocks.MockDocumentRenderer {
	r := new(mocks.MockDocumentRenderer)
	r.On("Format").Return(format)
	r.On("Extension").Return(ext).Maybe()
	r.On("ContentType").Return(contentType).Maybe()
	return r
}

func testDoc() *domain.InvoiceDocument {
	return &domain.InvoiceDocument{OrderID: "1042", InvoiceNumber: "INV-1042"}
}

func TestExport_Success(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.7"), nil)
	obs := &recordingObserver{}

	e := export.NewExporter(export.Options{Brand: "Storefront"}, nil, nil, obs, r)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatPDF)

	require.True(t, out.OK)
	require.NotNil(t, out.Artifact)
	assert.Equal(t, "Storefront-Invoice-1042.pdf", out.Artifact.Filename)
	assert.Equal(t, "application/pdf", out.Artifact.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), out.Artifact.Data)
	assert.Empty(t, out.Artifact.DownloadURL)
	assert.Empty(t, out.Reason)
	assert.Equal(t, []domain.FailureReason{""}, obs.reasons)
}

func TestExport_RendererUnavailable(t *testing.T) {
	e := export.NewExporter(export.Options{}, nil, nil, nil)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatXLSX)

	assert.False(t, out.OK)
	assert.Nil(t, out.Artifact)
	assert.Equal(t, domain.FailureRendererUnavailable, out.Reason)
	assert.ErrorIs(t, out.Err, domain.ErrRendererUnavailable)
	assert.False(t, e.Supports(domain.ExportFormatXLSX))
}

func TestExport_RendererErrorLeavesNoArtifact(t *testing.T) {
	r := newRenderer(domain.ExportFormatCSV, "csv", "text/csv")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("partial,row"), errors.New("disk full"))

	e := export.NewExporter(export.Options{}, nil, nil, nil, r)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatCSV)

	assert.False(t, out.OK)
	assert.Nil(t, out.Artifact)
	assert.Equal(t, domain.FailureRendererError, out.Reason)
	assert.ErrorContains(t, out.Err, "disk full")
}

func TestExport_EmptyOutputIsError(t *testing.T) {
	r := newRenderer(domain.ExportFormatCSV, "csv", "text/csv")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	e := export.NewExporter(export.Options{}, nil, nil, nil, r)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatCSV)

	assert.False(t, out.OK)
	assert.Equal(t, domain.FailureRendererError, out.Reason)
}

type panickingRenderer struct{}

func (panickingRenderer) Format() domain.ExportFormat { return domain.ExportFormatPDF }
func (panickingRenderer) ContentType() string         { return "application/pdf" }
func (panickingRenderer) Extension() string           { return "pdf" }
func (panickingRenderer) Render(context.Context, *domain.InvoiceDocument, io.Writer) error {
	panic("font table corrupt")
}

func TestExport_RendererPanic(t *testing.T) {
	e := export.NewExporter(export.Options{}, nil, nil, nil, panickingRenderer{})
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatPDF)

	assert.False(t, out.OK)
	assert.Equal(t, domain.FailureRendererError, out.Reason)
	assert.ErrorContains(t, out.Err, "font table corrupt")
}

func TestExport_CancelledContext(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := export.NewExporter(export.Options{}, nil, nil, nil, r)
	out := e.Export(ctx, testDoc(), domain.ExportFormatPDF)

	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, context.Canceled)
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_UploadsWhenEnabled(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "invoices" &&
			in.Key == "exports/1042/Shop-Invoice-1042.pdf" &&
			in.ContentType == "application/pdf" &&
			in.Size == 4 &&
			in.Filename == "Shop-Invoice-1042.pdf" &&
			in.Metadata["invoice-number"] == "INV-1042"
	})).Return(&port.UploadOutput{Location: "s3://invoices/exports/1042/Shop-Invoice-1042.pdf"}, nil)
	store.On("GetPresignedURL", mock.Anything, port.PresignInput{
		Bucket:   "invoices",
		Key:      "exports/1042/Shop-Invoice-1042.pdf",
		Filename: "Shop-Invoice-1042.pdf",
		Expiry:   10 * time.Minute,
	}).Return("https://signed.example/x", nil)

	opts := export.Options{Brand: "Shop", Bucket: "invoices", KeyPrefix: "/exports/", PresignExpiry: 10 * time.Minute, Upload: true}
	e := export.NewExporter(opts, store, nil, nil, r)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatPDF)

	require.True(t, out.OK)
	assert.Equal(t, "https://signed.example/x", out.Artifact.DownloadURL)
	assert.Equal(t, "s3://invoices/exports/1042/Shop-Invoice-1042.pdf", out.Artifact.Location)
	store.AssertExpectations(t)
}

func TestExport_UploadFailure(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))
	obs := &recordingObserver{}

	e := export.NewExporter(export.Options{Upload: true}, store, nil, obs, r)
	out := e.Export(context.Background(), testDoc(), domain.ExportFormatPDF)

	assert.False(t, out.OK)
	assert.Nil(t, out.Artifact)
	assert.Equal(t, domain.FailureDeliveryFailed, out.Reason)
	assert.ErrorIs(t, out.Err, domain.ErrUploadFailed)
	assert.Equal(t, []domain.FailureReason{domain.FailureDeliveryFailed}, obs.reasons)
}

func TestExport_PresignFailureRemovesObject(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	store.On("GetPresignedURL", mock.Anything, mock.Anything).Return("", errors.New("clock skew"))
	store.On("Delete", mock.Anything, "", "1042/Storefront-Invoice-1042.pdf").Return(nil)

	e := export.NewExporter(export.Options{Brand: "Storefront"}, store, nil, nil, r)
	out := e.Publish(context.Background(), testDoc(), domain.ExportFormatPDF)

	assert.False(t, out.OK)
	assert.Equal(t, domain.FailureDeliveryFailed, out.Reason)
	store.AssertExpectations(t)
}

func TestPublish_WithoutStorage(t *testing.T) {
	r := newRenderer(domain.ExportFormatPDF, "pdf", "application/pdf")
	r.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	e := export.NewExporter(export.Options{}, nil, nil, nil, r)
	assert.False(t, e.CanDeliver())

	out := e.Publish(context.Background(), testDoc(), domain.ExportFormatPDF)
	assert.False(t, out.OK)
	assert.Equal(t, domain.FailureDeliveryFailed, out.Reason)
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "Storefront-Invoice-1042.pdf", export.BuildFilename("Storefront", "1042", "pdf"))
	assert.Equal(t, "My_Shop-Invoice-ab_12.xlsx", export.BuildFilename("My Shop!", "ab/12", ".xlsx"))
	assert.Equal(t, "Store-Invoice-unknown.csv", export.BuildFilename("", "", "csv"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", export.SanitizeFilename("a  b//c"))
	assert.Len(t, export.SanitizeFilename(strings.Repeat("x", 150)), 100)
}
