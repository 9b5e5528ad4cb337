package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/ports"
)

// JWTSigner implements HS256 token signing/parsing for API sessions.
// The secret is held at adapter level so the application layer stays
// crypto-library agnostic.
type JWTSigner struct {
	secret []byte
}

// NewJWTSigner builds a signer from the configured process-wide secret.
func NewJWTSigner(secret string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

// NewEphemeralJWTSigner creates a random in-memory secret for local/dev use.
// This exists to unblock runtime startup when a static secret is
// intentionally absent; tokens do not survive restarts.
func NewEphemeralJWTSigner() (*JWTSigner, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return &JWTSigner{secret: secret}, nil
}

type tokenUser struct {
	ID string `json:"id"`
}

type apiJWTClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims ports.AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, apiJWTClaims{
		User: tokenUser{ID: claims.UserID.String()},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(s.secret)
}

func (s *JWTSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &apiJWTClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second), jwt.WithExpirationRequired())
	if err != nil {
		return ports.AuthClaims{}, err
	}
	claims, ok := parsed.Claims.(*apiJWTClaims)
	if !ok || !parsed.Valid {
		return ports.AuthClaims{}, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.User.ID)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("parse user id: %w", err)
	}

	out := ports.AuthClaims{UserID: userID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}
