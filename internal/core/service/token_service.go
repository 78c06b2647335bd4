package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// TokenService signs the bearer tokens handed to dashboard clients. A token
// only locates a session slot; permissions are always read from the slot.
type TokenService struct {
	jwtSecret string
	tokenTTL  time.Duration
}

func NewTokenService(jwtSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *TokenService) Issue(sessionID string, user *domain.AuthenticatedUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
