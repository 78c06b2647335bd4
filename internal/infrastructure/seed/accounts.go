// Package seed loads demo directory accounts from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
)

// Account is one entry of the seed file.
type Account struct {
	Name        string   `yaml:"name"`
	Email       string   `yaml:"email"`
	Password    string   `yaml:"password"`
	Role        string   `yaml:"role"`
	PropertyIDs []string `yaml:"property_ids"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadAccounts reads the seed file at path.
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseAccounts(data)
}

// ParseAccounts decodes seed YAML. Every entry must name a known role.
func ParseAccounts(data []byte) ([]Account, error) {
	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, a := range f.Accounts {
		if _, err := domain.ParseRole(a.Role); err != nil {
			return nil, fmt.Errorf("seed account %d (%s): %w", i, a.Email, err)
		}
	}
	return f.Accounts, nil
}

// Apply registers every account that is not already in the directory and
// returns how many were created. Entries without an email or password are
// skipped.
func Apply(ctx context.Context, svc ports.AccountService, accounts []Account, log zerolog.Logger) (int, error) {
	created := 0
	for _, a := range accounts {
		if a.Email == "" || a.Password == "" {
			continue
		}
		_, err := svc.Register(ctx, ports.RegisterAccountInput{
			Name:        a.Name,
			Email:       a.Email,
			Password:    a.Password,
			Role:        a.Role,
			PropertyIDs: a.PropertyIDs,
		})
		if errors.Is(err, domain.ErrUserExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", a.Email, err)
		}
		created++
		log.Debug().Str("email", a.Email).Str("role", a.Role).Msg("seeded account")
	}
	return created, nil
}
