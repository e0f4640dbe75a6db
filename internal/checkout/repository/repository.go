// Package repository defines persistence interfaces for checkout sessions.
package repository

import (
	"context"

	"github.com/zahrafashion/storefront/internal/checkout/domain"
)

// SessionRepository defines the interface for checkout session persistence.
// One session per user at a time.
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, userID string) error
}
