package port

import (
	"context"

	"storefront/internal/domain"
)

// OrderRepository reads stored orders. Implementations return
// domain.ErrOrderNotFound when no order has the given ID.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*domain.RawOrder, error)
}
