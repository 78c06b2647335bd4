package ports

import (
	"context"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// AccountRepository defines the interface for the account directory.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// SessionStore is durable storage for persisted sessions. Each key holds one
// serialized AuthenticatedUser.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound when the slot is empty.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete succeeds when the slot is already empty.
	Delete(ctx context.Context, key string) error
}
