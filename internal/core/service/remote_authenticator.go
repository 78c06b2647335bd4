package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// RemoteConfig describes the external identity service.
type RemoteConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// ClaimsSecret verifies the HS256 signature of issued access tokens.
	ClaimsSecret string
	// HTTPClient is optional; http.DefaultClient is used otherwise.
	HTTPClient *http.Client
}

// RemoteAuthenticator delegates credential checks to an identity service
// using the OAuth2 password grant and reads the account from the access
// token's claims.
type RemoteAuthenticator struct {
	oauth  *oauth2.Config
	secret []byte
	client *http.Client
}

type identityClaims struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	PropertyIDs []string `json:"property_ids"`
	jwt.RegisteredClaims
}

func NewRemoteAuthenticator(cfg RemoteConfig) *RemoteAuthenticator {
	return &RemoteAuthenticator{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		secret: []byte(cfg.ClaimsSecret),
		client: cfg.HTTPClient,
	}
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if a.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	}

	tok, err := a.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		if isGrantRejection(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity token request: %w", err)
	}

	claims := &identityClaims{}
	parsed, err := jwt.ParseWithClaims(tok.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("identity token claims: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("identity token has no subject")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("identity token role %q: %w", claims.Role, err)
	}
	if claims.Email == "" {
		claims.Email = email
	}

	return &domain.Account{
		ID:          claims.Subject,
		Name:        claims.Name,
		Email:       normalizeEmail(claims.Email),
		Role:        role,
		PropertyIDs: claims.PropertyIDs,
	}, nil
}

// isGrantRejection reports whether the identity service refused the
// credentials, as opposed to failing to answer.
func isGrantRejection(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return false
	}
	if re.ErrorCode != "" {
		return re.ErrorCode == "invalid_grant"
	}
	if re.Response == nil {
		return false
	}
	return re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized
}
