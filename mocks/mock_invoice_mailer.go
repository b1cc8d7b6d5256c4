package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/port"
)

// MockInvoiceMailer is a mock implementation of port.InvoiceMailer.
type MockInvoiceMailer struct {
	mock.Mock
}

func (m *MockInvoiceMailer) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
