package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logger"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "ORDER_NOT_FOUND", "order not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: pdf, xlsx, csv"
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusUnprocessableEntity, "INVALID_ORDER_AMOUNT", "order carries a negative amount"
	case errors.Is(err, domain.ErrMissingBuyerEmail):
		return http.StatusUnprocessableEntity, "MISSING_CUSTOMER_EMAIL", "order has no customer email"
	case errors.Is(err, domain.ErrExportFailed):
		return http.StatusInternalServerError, "EXPORT_FAILED", "invoice export failed"
	case errors.Is(err, domain.ErrRendererUnavailable):
		return http.StatusServiceUnavailable, "RENDERER_UNAVAILABLE", "document renderer unavailable"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrEmailFailed):
		return http.StatusBadGateway, "EMAIL_FAILED", "invoice email could not be sent"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.WithContext(c.Request.Context(), logrus.StandardLogger()).
			WithError(err).
			WithField("code", code).
			Error("internal error")
	}
	RespondError(c, status, code, msg)
}
