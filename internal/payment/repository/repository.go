package repository

import (
	"context"

	"github.com/zahrafashion/storefront/internal/payment/domain"
)

// PaymentMethodRepository defines the interface for payment method persistence.
type PaymentMethodRepository interface {
	// Create inserts a new payment method.
	Create(ctx context.Context, method *domain.PaymentMethod) error

	// GetByID retrieves a payment method by its ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)

	// List returns payment methods, optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error)

	// SetActive toggles availability of a payment method.
	SetActive(ctx context.Context, id string, active bool) error
}
