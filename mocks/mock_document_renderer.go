package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
// Return a []byte from Render's first return value to have it written to w.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) Format() domain.ExportFormat {
	args := m.Called()
	return args.Get(0).(domain.ExportFormat)
}

func (m *MockDocumentRenderer) ContentType() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDocumentRenderer) Extension() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDocumentRenderer) Render(ctx context.Context, doc *domain.InvoiceDocument, w io.Writer) error {
	args := m.Called(ctx, doc, w)
	if data, ok := args.Get(0).([]byte); ok {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return args.Error(1)
}
