package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
)

// AccountService implements account registration against the directory.
type AccountService struct {
	repo ports.AccountRepository
	cost int
}

func NewAccountService(repo ports.AccountRepository) *AccountService {
	return &AccountService{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *AccountService) Register(ctx context.Context, in ports.RegisterAccountInput) (*domain.Account, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidAccount
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PropertyIDs:  in.PropertyIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DirectoryAuthenticator checks credentials against the account directory.
type DirectoryAuthenticator struct {
	repo ports.AccountRepository
}

func NewDirectoryAuthenticator(repo ports.AccountRepository) *DirectoryAuthenticator {
	return &DirectoryAuthenticator{repo: repo}
}

// Authenticate does not reveal whether the email or the password was wrong.
func (a *DirectoryAuthenticator) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
