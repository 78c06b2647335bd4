package ports

import (
	"context"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// Authenticator verifies credentials. A rejected login returns
// domain.ErrInvalidCredentials; any other error means the check could not
// be performed.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

// AccountService manages directory accounts.
type AccountService interface {
	Register(ctx context.Context, in RegisterAccountInput) (*domain.Account, error)
}

// RegisterAccountInput carries the fields of a new directory account.
type RegisterAccountInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	PropertyIDs []string
}

// TokenIssuer signs the bearer token that locates a session.
type TokenIssuer interface {
	Issue(sessionID string, user *domain.AuthenticatedUser) (string, error)
}
