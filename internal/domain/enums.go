package domain

// ExportFormat names a rendered invoice file type.
type ExportFormat string

const (
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

// ParseExportFormat maps a query value to an ExportFormat. Empty means PDF.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(s) {
	case "", ExportFormatPDF:
		return ExportFormatPDF, true
	case ExportFormatXLSX, ExportFormatCSV:
		return ExportFormat(s), true
	}
	return "", false
}

// FailureReason explains why an export did not produce an artifact.
type FailureReason string

const (
	FailureRendererUnavailable FailureReason = "renderer_unavailable"
	FailureRendererError       FailureReason = "renderer_error"
	FailureDeliveryFailed      FailureReason = "delivery_failed"
)

// UserRole gates the back-office routes.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)
