package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/pkg/metrics"
)

// SessionKey is the storage slot that holds the persisted authenticated user.
const SessionKey = "current_authenticated_user"

// AccessService answers permission queries for one session and owns that
// session's login, logout and restore lifecycle. The zero session is
// uninitialized and reports IsLoading until RestoreSession or Login settles it.
type AccessService struct {
	auth     ports.Authenticator
	store    ports.SessionStore
	recorder ports.ActivityRecorder
	key      string
	now      func() time.Time
	log      zerolog.Logger

	mu       sync.RWMutex
	user     *domain.AuthenticatedUser
	status   domain.SessionStatus
	inFlight bool
}

// AccessOption customises an AccessService.
type AccessOption func(*AccessService)

// WithSessionKey overrides the storage slot.
func WithSessionKey(key string) AccessOption {
	return func(s *AccessService) { s.key = key }
}

// WithClock overrides the time source used to stamp last-login.
func WithClock(now func() time.Time) AccessOption {
	return func(s *AccessService) { s.now = now }
}

// WithActivityRecorder reports logins and logouts to r.
func WithActivityRecorder(r ports.ActivityRecorder) AccessOption {
	return func(s *AccessService) { s.recorder = r }
}

// NewAccessService returns an uninitialized session.
func NewAccessService(auth ports.Authenticator, store ports.SessionStore, log zerolog.Logger, opts ...AccessOption) *AccessService {
	s := &AccessService{
		auth:   auth,
		store:  store,
		key:    SessionKey,
		now:    time.Now,
		log:    log,
		status: domain.SessionUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and, on success, persists and installs the
// user. A rejected login returns false with a nil error; errors are reserved
// for failures that say nothing about the credentials.
func (s *AccessService) Login(ctx context.Context, email, password string) (bool, error) {
	if !s.begin() {
		metrics.LoginAttemptsTotal.WithLabelValues("busy").Inc()
		return false, domain.ErrLoginInProgress
	}
	defer s.end()

	email = strings.TrimSpace(email)

	account, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			s.reject(ctx, email)
			return false, nil
		}
		metrics.LoginAttemptsTotal.WithLabelValues("unavailable").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("credential check failed")
		return false, fmt.Errorf("login: %w: %w", domain.ErrAuthUnavailable, err)
	}

	user := domain.NewAuthenticatedUser(account, s.now())
	data, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("login: encode session: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("store_error").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("failed to persist session")
		return false, fmt.Errorf("login: %w: %w", domain.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	s.user = user
	s.transition(domain.SessionAuthenticated)
	s.mu.Unlock()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.record(domain.ActivityLogin, user.Email, user)
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login succeeded")
	return true, nil
}

// reject leaves the session anonymous after a failed credential check.
func (s *AccessService) reject(ctx context.Context, email string) {
	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.transition(domain.SessionAnonymous)
	s.mu.Unlock()

	if prev != nil {
		if err := s.store.Delete(ctx, s.key); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear replaced session")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
	s.record(domain.ActivityLoginRejected, email, nil)
	s.log.Info().Str("email", email).Msg("login rejected")
}

// Logout clears the session and its persisted record. Calling it without a
// live session is a no-op.
func (s *AccessService) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.transition(domain.SessionAnonymous)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("logout: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if prev != nil {
		metrics.LogoutsTotal.Inc()
		s.record(domain.ActivityLogout, prev.Email, prev)
		s.log.Info().Str("email", prev.Email).Msg("logged out")
	}
	return nil
}

// RestoreSession loads a previously persisted user without credentials.
// Records that cannot be trusted are deleted and treated as absent.
func (s *AccessService) RestoreSession(ctx context.Context) error {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.settleAnonymous()
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.SessionRestoresTotal.WithLabelValues("absent").Inc()
			return nil
		}
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("restore session: %w: %w", domain.ErrStoreUnavailable, err)
	}

	var user domain.AuthenticatedUser
	err = json.Unmarshal(data, &user)
	if err == nil {
		err = user.Validate()
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discarding unreadable session record")
		if delErr := s.store.Delete(ctx, s.key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", s.key).Msg("failed to delete unreadable session record")
		}
		s.settleAnonymous()
		metrics.SessionRestoresTotal.WithLabelValues("discarded").Inc()
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.transition(domain.SessionAuthenticated)
	s.mu.Unlock()

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	return nil
}

// HasPermission reports whether the session's user holds p. No user, no grant.
func (s *AccessService) HasPermission(p domain.Permission) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Permissions.Has(p)
}

// HasAnyPermission reports whether at least one of perms is granted. An
// empty list is a denial.
func (s *AccessService) HasAnyPermission(perms ...domain.Permission) bool {
	for _, p := range perms {
		if s.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every one of perms is granted. An empty
// list is a denial.
func (s *AccessService) HasAllPermissions(perms ...domain.Permission) bool {
	if len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if !s.HasPermission(p) {
			return false
		}
	}
	return true
}

// CurrentUser returns a copy of the session's user.
func (s *AccessService) CurrentUser() (*domain.AuthenticatedUser, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

func (s *AccessService) Authenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

func (s *AccessService) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// IsLoading is true before the first restore or login settles and while a
// login is in flight.
func (s *AccessService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight || s.status == domain.SessionUninitialized
}

func (s *AccessService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *AccessService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if s.status == domain.SessionUninitialized {
		s.transition(domain.SessionAnonymous)
	}
}

func (s *AccessService) settleAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.transition(domain.SessionAnonymous)
}

// transition must be called with mu held.
func (s *AccessService) transition(next domain.SessionStatus) {
	if !s.status.CanTransitionTo(next) {
		s.log.Warn().Str("from", string(s.status)).Str("to", string(next)).Msg("ignored session transition")
		return
	}
	s.status = next
}

func (s *AccessService) record(action domain.ActivityAction, email string, user *domain.AuthenticatedUser) {
	if s.recorder == nil {
		return
	}
	a := domain.Activity{
		ID:         uuid.NewString(),
		Email:      email,
		Action:     action,
		OccurredAt: s.now().UTC(),
	}
	if user != nil {
		a.UserID = user.ID
		a.Role = user.Role
	}
	s.recorder.Enqueue(a)
}

// SessionManager opens one AccessService per client session over a shared
// store.
type SessionManager struct {
	auth  ports.Authenticator
	store ports.SessionStore
	log   zerolog.Logger
	opts  []AccessOption
}

func NewSessionManager(auth ports.Authenticator, store ports.SessionStore, log zerolog.Logger, opts ...AccessOption) *SessionManager {
	return &SessionManager{auth: auth, store: store, log: log, opts: opts}
}

// Open returns a fresh, uninitialized session bound to sessionID's slot.
func (m *SessionManager) Open(sessionID string) *AccessService {
	opts := make([]AccessOption, 0, len(m.opts)+1)
	opts = append(opts, m.opts...)
	opts = append(opts, WithSessionKey(SlotKey(sessionID)))
	return NewAccessService(m.auth, m.store, m.log.With().Str("session_id", sessionID).Logger(), opts...)
}

// SlotKey returns the storage slot for a client session.
func SlotKey(sessionID string) string {
	if sessionID == "" {
		return SessionKey
	}
	return SessionKey + ":" + sessionID
}
