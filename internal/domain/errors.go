package domain

import "errors"

// Sentinel errors shared across layers. Application code wraps these with
// context via fmt.Errorf("%w: ...") and the HTTP adapter maps them to
// status codes and response messages in one place.
var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists covers duplicate registration against the email key.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
)
