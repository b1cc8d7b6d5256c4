package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
)

// MockOrderRepo is a mock implementation of port.OrderRepository.
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetByID(ctx context.Context, orderID string) (*domain.RawOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawOrder), args.Error(1)
}
