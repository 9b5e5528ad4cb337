package ports

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims is the validated token payload handed to handlers.
type AuthClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(raw string) (AuthClaims, error)
}
