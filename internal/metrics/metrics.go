package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/domain"
)

type Registry struct {
	reg *prometheus.Registry

	InvoicesBuilt          prometheus.Counter
	ReconciliationMismatch prometheus.Counter
	ItemsNormalized        prometheus.Counter
	Exports                *prometheus.CounterVec
	ExportLatencySec       *prometheus.HistogramVec
	InvoiceEmails          *prometheus.CounterVec
	HTTPRequests           *prometheus.CounterVec
}

// NewRegistry registers the invoice engine collectors plus Go runtime and
// process collectors under namespace.
func NewRegistry(namespace string) *Registry {
	r := prometheus.NewRegistry()

	built := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "invoices_built_total",
		Help: "Invoice documents assembled.",
	})
	mismatch := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "invoice_reconciliation_mismatch_total",
		Help: "Invoices whose computed grand total disagreed with the stored order total.",
	})
	items := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "order_items_normalized_total",
		Help: "Order items normalized into invoice lines.",
	})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "invoice_exports_total",
		Help: "Invoice export attempts by format and outcome.",
	}, []string{"format", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "invoice_export_latency_seconds",
		Help:    "Time spent rendering and delivering an invoice.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "invoice_emails_total",
		Help: "Invoice e-mails by outcome.",
	}, []string{"outcome"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total",
		Help: "HTTP requests by route and status class.",
	}, []string{"method", "route", "status"})

	r.MustRegister(built, mismatch, items, exports, latency, emails, httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:                    r,
		InvoicesBuilt:          built,
		ReconciliationMismatch: mismatch,
		ItemsNormalized:        items,
		Exports:                exports,
		ExportLatencySec:       latency,
		InvoiceEmails:          emails,
		HTTPRequests:           httpRequests,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// ObserveInvoice records one assembled invoice.
func (r *Registry) ObserveInvoice(lines int, mismatch bool) {
	r.InvoicesBuilt.Inc()
	r.ItemsNormalized.Add(float64(lines))
	if mismatch {
		r.ReconciliationMismatch.Inc()
	}
}

// ObserveExport records one export attempt. reason is empty on success.
func (r *Registry) ObserveExport(format domain.ExportFormat, reason domain.FailureReason, took time.Duration) {
	outcome := "ok"
	if reason != "" {
		outcome = string(reason)
	}
	r.Exports.WithLabelValues(string(format), outcome).Inc()
	r.ExportLatencySec.WithLabelValues(string(format)).Observe(took.Seconds())
}

// ObserveEmail records one invoice e-mail attempt.
func (r *Registry) ObserveEmail(err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	r.InvoiceEmails.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// pattern, never the raw path.
func (r *Registry) ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Inc()
}
