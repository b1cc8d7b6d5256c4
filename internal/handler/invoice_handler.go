package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/render"
	"storefront/internal/service"
)

// InvoiceHandler serves invoices of stored orders.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	defaultFormat  domain.ExportFormat
	currencySymbol string
}

// NewInvoiceHandler creates a new InvoiceHandler. defaultFormat applies when
// a request names no format.
func NewInvoiceHandler(invoiceService service.InvoiceService, defaultFormat domain.ExportFormat, currencySymbol string) *InvoiceHandler {
	if defaultFormat == "" {
		defaultFormat = domain.ExportFormatPDF
	}
	return &InvoiceHandler{
		invoiceService: invoiceService,
		defaultFormat:  defaultFormat,
		currencySymbol: currencySymbol,
	}
}

// GetInvoice handles GET /api/v1/orders/:id/invoice
// @Summary Get the invoice of an order
// @Tags invoices
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response{data=InvoiceSummary}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Security BearerAuth
// @Router /orders/{id}/invoice [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	doc, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, InvoiceSummary{Invoice: doc, View: render.NewView(doc, h.currencySymbol)})
}

// ListItems handles GET /api/v1/orders/:id/items
// @Summary List the normalized items of an order
// @Tags invoices
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response{data=service.ItemsView}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Security BearerAuth
// @Router /orders/{id}/items [get]
func (h *InvoiceHandler) ListItems(c *gin.Context) {
	view, err := h.invoiceService.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Download handles GET /api/v1/orders/:id/invoice/download
// @Summary Download the invoice as a file
// @Tags invoices
// @Produce application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param id path string true "Order ID"
// @Param format query string false "pdf, xlsx or csv" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 500 {object} ErrorResponseBody "Export failed"
// @Security BearerAuth
// @Router /orders/{id}/invoice/download [get]
func (h *InvoiceHandler) Download(c *gin.Context) {
	format, ok := h.format(c.Query("format"))
	if !ok {
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	art, err := h.invoiceService.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// Email handles POST /api/v1/orders/:id/invoice/email
// @Summary Email the invoice to the customer
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body EmailInvoiceRequest false "Attachment format"
// @Success 202 {object} Response{data=service.EmailReceipt}
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 422 {object} ErrorResponseBody "Order has no customer email"
// @Failure 502 {object} ErrorResponseBody "Email could not be sent"
// @Security BearerAuth
// @Router /orders/{id}/invoice/email [post]
func (h *InvoiceHandler) Email(c *gin.Context) {
	var req EmailInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	format, ok := h.format(req.Format)
	if !ok {
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	receipt, err := h.invoiceService.EmailInvoice(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, receipt)
}

func (h *InvoiceHandler) format(raw string) (domain.ExportFormat, bool) {
	if raw == "" {
		return h.defaultFormat, true
	}
	return domain.ParseExportFormat(raw)
}
