package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

func TestObserveInvoice(t *testing.T) {
	r := metrics.NewRegistry("test")

	r.ObserveInvoice(2, false)
	r.ObserveInvoice(3, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.InvoicesBuilt))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.ItemsNormalized))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ReconciliationMismatch))
}

func TestObserveExport(t *testing.T) {
	r := metrics.NewRegistry("test")

	r.ObserveExport(domain.ExportFormatPDF, "", 10*time.Millisecond)
	r.ObserveExport(domain.ExportFormatPDF, domain.FailureRendererError, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Exports.WithLabelValues("pdf", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Exports.WithLabelValues("pdf", "renderer_error")))
}

func TestObserveEmail(t *testing.T) {
	r := metrics.NewRegistry("test")
	r.ObserveEmail(nil)
	r.ObserveEmail(errors.New("ses down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.InvoiceEmails.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.InvoiceEmails.WithLabelValues("failed")))
}

func TestObserveRequest(t *testing.T) {
	r := metrics.NewRegistry("test")
	r.ObserveRequest("GET", "/api/v1/orders/:id/invoice", 200)
	r.ObserveRequest("GET", "/api/v1/orders/:id/invoice", 204)
	r.ObserveRequest("GET", "", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("GET", "/api/v1/orders/:id/invoice", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("GET", "unmatched", "4xx")))
}

func TestHandler_Exposition(t *testing.T) {
	r := metrics.NewRegistry("test")
	r.ObserveInvoice(1, true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_invoice_reconciliation_mismatch_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
