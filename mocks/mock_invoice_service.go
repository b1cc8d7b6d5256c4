package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, orderID string) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDocument), args.Error(1)
}

func (m *MockInvoiceService) ListItems(ctx context.Context, orderID string) (*service.ItemsView, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ItemsView), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, orderID string, format domain.ExportFormat) (*domain.Artifact, error) {
	args := m.Called(ctx, orderID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockInvoiceService) EmailInvoice(ctx context.Context, orderID string, format domain.ExportFormat) (*service.EmailReceipt, error) {
	args := m.Called(ctx, orderID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EmailReceipt), args.Error(1)
}
