package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/service"
)

// Options carries the optional parts of the HTTP surface.
type Options struct {
	AllowedOrigins []string
	// Metrics is served on MetricsPath when non-nil.
	Metrics     *metrics.Registry
	MetricsPath string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log logrus.FieldLogger,
	authSvc service.AuthService,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")

	// Back-office routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff))

	orders := protected.Group("/orders/:id")
	orders.GET("/items", invoiceH.ListItems)
	orders.GET("/invoice", invoiceH.GetInvoice)
	orders.GET("/invoice/download", invoiceH.Download)
	orders.POST("/invoice/email", middleware.RequireRole(domain.RoleAdmin), invoiceH.Email)

	return r
}
