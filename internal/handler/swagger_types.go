package handler

import (
	"storefront/internal/domain"
	"storefront/internal/render"
)

// Swagger type definitions for API documentation.

// --- Request Types ---

// EmailInvoiceRequest represents the optional body of the invoice email request.
type EmailInvoiceRequest struct {
	Format string `json:"format" example:"pdf"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// InvoiceSummary is the invoice document with its display rendering, as
// returned by GET /orders/:id/invoice.
type InvoiceSummary struct {
	Invoice *domain.InvoiceDocument `json:"invoice"`
	View    render.View             `json:"view"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
