package invoice

import (
	"github.com/shopspring/decimal"

	"storefront/internal/config"
	"storefront/internal/domain"
)

// Settings is everything the builder needs that does not come from the order.
type Settings struct {
	TaxRate            decimal.Decimal
	Currency           string
	InvoicePrefix      string
	Seller             domain.SellerBlock
	ReconcileTolerance decimal.Decimal
	MajorUnit          string
	MinorUnit          string
}

// SettingsFromConfig maps the invoice config section onto Settings.
func SettingsFromConfig(cfg *config.InvoiceConfig) Settings {
	return Settings{
		TaxRate:            cfg.TaxRate,
		Currency:           cfg.Currency,
		InvoicePrefix:      cfg.Prefix,
		ReconcileTolerance: cfg.ReconcileTolerance,
		MajorUnit:          cfg.MajorUnit,
		MinorUnit:          cfg.MinorUnit,
		Seller: domain.SellerBlock{
			Name:    cfg.Seller.Name,
			Address: cfg.Seller.Address,
			Email:   cfg.Seller.Email,
			Phone:   cfg.Seller.Phone,
			GSTIN:   cfg.Seller.GSTIN,
		},
	}
}

// DefaultSettings is an 18% INR configuration without a seller block.
func DefaultSettings() Settings {
	return Settings{
		TaxRate:            decimal.RequireFromString("0.18"),
		Currency:           "INR",
		InvoicePrefix:      "INV-",
		ReconcileTolerance: decimal.RequireFromString("0.01"),
		MajorUnit:          "Rupees",
		MinorUnit:          "Paise",
	}
}
