package repository

import (
	"context"

	"github.com/zahrafashion/storefront/internal/order/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID  *string
	Status  *string
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its items atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its ID, eagerly loading its items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the filter with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the status of an order and optionally records a
	// cancel reason or payment proof reference.
	UpdateStatus(ctx context.Context, id, status, cancelReason, paymentProofURL string) error
}
