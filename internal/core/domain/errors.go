package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownPermission  = errors.New("unknown permission")
	ErrUnknownScreen      = errors.New("unknown screen")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrLoginInProgress    = errors.New("login already in progress")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMalformedSession   = errors.New("malformed session record")
	ErrInvalidAccount     = errors.New("name, email and password are required")
)

// Infrastructure failures. Callers can tell these apart from a rejected
// login, which is never an error.
var (
	ErrAuthUnavailable  = errors.New("authentication service unavailable")
	ErrStoreUnavailable = errors.New("session storage unavailable")
)
