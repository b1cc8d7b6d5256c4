package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/email/noop"
	"storefront/internal/email/ses"
	"storefront/internal/export"
	"storefront/internal/handler"
	"storefront/internal/invoice"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/port"
	"storefront/internal/repository/postgres"
	"storefront/internal/router"
	"storefront/internal/service"
	s3storage "storefront/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(log.GetLevel())
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orderRepo := postgres.NewOrderRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize mailer
	var mailer port.InvoiceMailer
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		mailer = noop.NewNoopSender(log)
	}

	// Metrics observers stay untyped nil when disabled.
	var (
		reg            *metrics.Registry
		builderOpts    []invoice.Option
		exportObserver export.Observer
		emailObserver  service.EmailObserver
	)
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry(cfg.Metrics.Namespace)
		builderOpts = append(builderOpts, invoice.WithObserver(reg))
		exportObserver = reg
		emailObserver = reg
	}

	// Initialize invoice pipeline
	builder, err := invoice.NewBuilder(invoice.SettingsFromConfig(&cfg.Invoice), log, builderOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice builder: %w", err)
	}
	exporter := export.NewExporter(export.Options{
		Brand:         cfg.Invoice.Brand,
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.Export.KeyPrefix,
		PresignExpiry: time.Duration(cfg.S3.PresignExpiry) * time.Second,
		Upload:        cfg.Export.Upload,
		Timeout:       cfg.Export.Timeout,
	}, s3Client, log, exportObserver,
		export.StandardRenderers(cfg.Invoice.CurrencySymbol, cfg.Export.PDFPageSize)...,
	)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	invoiceSvc := service.NewInvoiceService(orderRepo, builder, exporter, mailer, &cfg.Invoice, log, emailObserver)

	// Initialize handlers
	defaultFormat, ok := domain.ParseExportFormat(cfg.Export.DefaultFormat)
	if !ok {
		return fmt.Errorf("invalid export.default_format %q", cfg.Export.DefaultFormat)
	}
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, defaultFormat, cfg.Invoice.CurrencySymbol)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(log, authSvc, invoiceH, healthH, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        reg,
		MetricsPath:    cfg.Metrics.Path,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	}
	return nil
}
