package repository

import (
	"context"

	"github.com/zahrafashion/storefront/internal/address/domain"
)

// AddressRepository defines the interface for address persistence operations.
type AddressRepository interface {
	// Create inserts a new address. When the address is marked default, any
	// previous default for the user is cleared in the same transaction.
	Create(ctx context.Context, addr *domain.Address) error

	// GetByID retrieves an address by its ID.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByUser returns all addresses for a user, default first.
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)

	// Update rewrites an existing address. Default handling matches Create.
	Update(ctx context.Context, addr *domain.Address) error

	// Delete removes an address.
	Delete(ctx context.Context, id string) error
}
