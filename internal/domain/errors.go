package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrOrderNotFound       = errors.New("order not found")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrNegativeTaxRate     = errors.New("tax rate must not be negative")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("invoice export failed")
	ErrMissingBuyerEmail   = errors.New("order has no customer email")
	ErrRendererUnavailable = errors.New("document renderer unavailable")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrEmailFailed         = errors.New("invoice email could not be sent")
)
