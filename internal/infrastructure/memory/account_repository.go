package memory

import (
	"context"
	"sync"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// AccountRepository is an account directory keyed by email.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.accounts[account.Email] = *cloneAccount(*account)
	return cloneAccount(*account), nil
}

func cloneAccount(a domain.Account) *domain.Account {
	if a.PropertyIDs != nil {
		a.PropertyIDs = append([]string(nil), a.PropertyIDs...)
	}
	return &a
}
