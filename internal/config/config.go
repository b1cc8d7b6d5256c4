package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Invoice InvoiceConfig
	Export  ExportConfig
	Email   EmailConfig
	Metrics MetricsConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SellerConfig is the seller block printed on every invoice.
type SellerConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	GSTIN   string `mapstructure:"gstin"`
}

// InvoiceConfig holds invoice computation settings.
type InvoiceConfig struct {
	TaxRate            decimal.Decimal `mapstructure:"tax_rate"`
	Currency           string          `mapstructure:"currency"`
	CurrencySymbol     string          `mapstructure:"currency_symbol"`
	Prefix             string          `mapstructure:"prefix"`
	Brand              string          `mapstructure:"brand"`
	ReconcileTolerance decimal.Decimal `mapstructure:"reconcile_tolerance"`
	MajorUnit          string          `mapstructure:"major_unit"`
	MinorUnit          string          `mapstructure:"minor_unit"`
	Seller             SellerConfig    `mapstructure:"seller"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	DefaultFormat string        `mapstructure:"default_format"`
	Upload        bool          `mapstructure:"upload"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	Timeout       time.Duration `mapstructure:"timeout"`
	PDFPageSize   string        `mapstructure:"pdf_page_size"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds settings for verifying back-office access tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables rotated file output in addition to stdout.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from environment variables with the STOREFRONT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "storefront")
	v.SetDefault("db.password", "storefront_secret")
	v.SetDefault("db.name", "storefront_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "storefront")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "storefront-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Invoice defaults
	v.SetDefault("invoice.tax_rate", "0.18")
	v.SetDefault("invoice.currency", "INR")
	v.SetDefault("invoice.currency_symbol", "₹")
	v.SetDefault("invoice.prefix", "INV-")
	v.SetDefault("invoice.brand", "Storefront")
	v.SetDefault("invoice.reconcile_tolerance", "0.01")
	v.SetDefault("invoice.major_unit", "Rupees")
	v.SetDefault("invoice.minor_unit", "Paise")
	v.SetDefault("invoice.seller.name", "Storefront Retail Pvt. Ltd.")
	v.SetDefault("invoice.seller.address", "")
	v.SetDefault("invoice.seller.email", "billing@storefront.local")
	v.SetDefault("invoice.seller.phone", "")
	v.SetDefault("invoice.seller.gstin", "")

	// Export defaults
	v.SetDefault("export.default_format", "pdf")
	v.SetDefault("export.upload", false)
	v.SetDefault("export.key_prefix", "invoices")
	v.SetDefault("export.timeout", "20s")
	v.SetDefault("export.pdf_page_size", "A4")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@storefront.local")
	v.SetDefault("email.from_name", "Storefront")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "storefront")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "STOREFRONT_SERVER_PORT",
		"server.read_timeout":         "STOREFRONT_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "STOREFRONT_SERVER_WRITE_TIMEOUT",
		"server.environment":          "STOREFRONT_SERVER_ENVIRONMENT",
		"db.host":                     "STOREFRONT_DB_HOST",
		"db.port":                     "STOREFRONT_DB_PORT",
		"db.user":                     "STOREFRONT_DB_USER",
		"db.password":                 "STOREFRONT_DB_PASSWORD",
		"db.name":                     "STOREFRONT_DB_NAME",
		"db.sslmode":                  "STOREFRONT_DB_SSLMODE",
		"db.max_open":                 "STOREFRONT_DB_MAX_OPEN",
		"db.max_idle":                 "STOREFRONT_DB_MAX_IDLE",
		"jwt.secret":                  "STOREFRONT_JWT_SECRET",
		"jwt.issuer":                  "STOREFRONT_JWT_ISSUER",
		"s3.region":                   "STOREFRONT_S3_REGION",
		"s3.bucket":                   "STOREFRONT_S3_BUCKET",
		"s3.endpoint":                 "STOREFRONT_S3_ENDPOINT",
		"s3.access_key":               "STOREFRONT_S3_ACCESS_KEY",
		"s3.secret_key":               "STOREFRONT_S3_SECRET_KEY",
		"s3.presign_expiry":           "STOREFRONT_S3_PRESIGN_EXPIRY",
		"log.level":                   "STOREFRONT_LOG_LEVEL",
		"log.format":                  "STOREFRONT_LOG_FORMAT",
		"log.file":                    "STOREFRONT_LOG_FILE",
		"log.max_size_mb":             "STOREFRONT_LOG_MAX_SIZE_MB",
		"log.max_backups":             "STOREFRONT_LOG_MAX_BACKUPS",
		"log.max_age_days":            "STOREFRONT_LOG_MAX_AGE_DAYS",
		"cors.allowed_origins":        "STOREFRONT_CORS_ALLOWED_ORIGINS",
		"invoice.tax_rate":            "STOREFRONT_INVOICE_TAX_RATE",
		"invoice.currency":            "STOREFRONT_INVOICE_CURRENCY",
		"invoice.currency_symbol":     "STOREFRONT_INVOICE_CURRENCY_SYMBOL",
		"invoice.prefix":              "STOREFRONT_INVOICE_PREFIX",
		"invoice.brand":               "STOREFRONT_INVOICE_BRAND",
		"invoice.reconcile_tolerance": "STOREFRONT_INVOICE_RECONCILE_TOLERANCE",
		"invoice.major_unit":          "STOREFRONT_INVOICE_MAJOR_UNIT",
		"invoice.minor_unit":          "STOREFRONT_INVOICE_MINOR_UNIT",
		"invoice.seller.name":         "STOREFRONT_INVOICE_SELLER_NAME",
		"invoice.seller.address":      "STOREFRONT_INVOICE_SELLER_ADDRESS",
		"invoice.seller.email":        "STOREFRONT_INVOICE_SELLER_EMAIL",
		"invoice.seller.phone":        "STOREFRONT_INVOICE_SELLER_PHONE",
		"invoice.seller.gstin":        "STOREFRONT_INVOICE_SELLER_GSTIN",
		"export.default_format":       "STOREFRONT_EXPORT_DEFAULT_FORMAT",
		"export.upload":               "STOREFRONT_EXPORT_UPLOAD",
		"export.key_prefix":           "STOREFRONT_EXPORT_KEY_PREFIX",
		"export.timeout":              "STOREFRONT_EXPORT_TIMEOUT",
		"export.pdf_page_size":        "STOREFRONT_EXPORT_PDF_PAGE_SIZE",
		"email.provider":              "STOREFRONT_EMAIL_PROVIDER",
		"email.region":                "STOREFRONT_EMAIL_REGION",
		"email.from_address":          "STOREFRONT_EMAIL_FROM_ADDRESS",
		"email.from_name":             "STOREFRONT_EMAIL_FROM_NAME",
		"metrics.enabled":             "STOREFRONT_METRICS_ENABLED",
		"metrics.path":                "STOREFRONT_METRICS_PATH",
		"metrics.namespace":           "STOREFRONT_METRICS_NAMESPACE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if STOREFRONT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("STOREFRONT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		File:       v.GetString("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAgeDays: v.GetInt("log.max_age_days"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	taxRate, err := decimal.NewFromString(v.GetString("invoice.tax_rate"))
	if err != nil {
		return nil, fmt.Errorf("invalid invoice.tax_rate %q: %w", v.GetString("invoice.tax_rate"), err)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("invoice.tax_rate must not be negative, got %s", taxRate)
	}
	tolerance, err := decimal.NewFromString(v.GetString("invoice.reconcile_tolerance"))
	if err != nil {
		return nil, fmt.Errorf("invalid invoice.reconcile_tolerance %q: %w", v.GetString("invoice.reconcile_tolerance"), err)
	}

	cfg.Invoice = InvoiceConfig{
		TaxRate:            taxRate,
		Currency:           v.GetString("invoice.currency"),
		CurrencySymbol:     v.GetString("invoice.currency_symbol"),
		Prefix:             v.GetString("invoice.prefix"),
		Brand:              v.GetString("invoice.brand"),
		ReconcileTolerance: tolerance.Abs(),
		MajorUnit:          v.GetString("invoice.major_unit"),
		MinorUnit:          v.GetString("invoice.minor_unit"),
		Seller: SellerConfig{
			Name:    v.GetString("invoice.seller.name"),
			Address: v.GetString("invoice.seller.address"),
			Email:   v.GetString("invoice.seller.email"),
			Phone:   v.GetString("invoice.seller.phone"),
			GSTIN:   v.GetString("invoice.seller.gstin"),
		},
	}

	cfg.Export = ExportConfig{
		DefaultFormat: v.GetString("export.default_format"),
		Upload:        v.GetBool("export.upload"),
		KeyPrefix:     v.GetString("export.key_prefix"),
		Timeout:       v.GetDuration("export.timeout"),
		PDFPageSize:   v.GetString("export.pdf_page_size"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled:   v.GetBool("metrics.enabled"),
		Path:      v.GetString("metrics.path"),
		Namespace: v.GetString("metrics.namespace"),
	}

	return cfg, nil
}
