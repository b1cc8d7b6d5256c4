package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

// orderRow mirrors the orders table. JSON columns are read as raw bytes so
// a malformed value written by an old client never fails the scan.
type orderRow struct {
	ID              string              `db:"id"`
	CustomerName    string              `db:"customer_name"`
	CustomerEmail   string              `db:"customer_email"`
	CustomerPhone   sql.NullString      `db:"customer_phone"`
	ShippingAddress []byte              `db:"shipping_address"`
	Items           []byte              `db:"items"`
	Subtotal        decimal.NullDecimal `db:"subtotal"`
	ShippingCost    decimal.NullDecimal `db:"shipping_cost"`
	Total           decimal.NullDecimal `db:"total"`
	Status          string              `db:"status"`
	PaymentStatus   string              `db:"payment_status"`
	CreatedAt       time.Time           `db:"created_at"`
}

const selectOrder = `SELECT id, customer_name, customer_email, customer_phone,
	shipping_address, items, subtotal, shipping_cost, total,
	status, payment_status, created_at
	FROM orders WHERE id = $1`

func (r *orderRepo) GetByID(ctx context.Context, orderID string) (*domain.RawOrder, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, selectOrder, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	return row.toDomain(), nil
}

func (row *orderRow) toDomain() *domain.RawOrder {
	return &domain.RawOrder{
		ID:              row.ID,
		CustomerName:    row.CustomerName,
		CustomerEmail:   row.CustomerEmail,
		CustomerPhone:   row.CustomerPhone.String,
		ShippingAddress: jsonColumn(row.ShippingAddress),
		Items:           jsonColumn(row.Items),
		Subtotal:        row.Subtotal,
		ShippingCost:    row.ShippingCost,
		Total:           row.Total,
		Status:          row.Status,
		PaymentStatus:   row.PaymentStatus,
		CreatedAt:       row.CreatedAt,
	}
}

// jsonColumn passes valid JSON through and wraps anything else as a JSON
// string, which the normalizer treats as an unreadable text payload.
func jsonColumn(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	quoted, err := json.Marshal(string(b))
	if err != nil {
		return nil
	}
	return quoted
}
