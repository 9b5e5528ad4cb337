package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

// dummyPasswordHash is compared against when the email is unknown so login
// latency does not reveal whether an account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register creates the account, derives the avatar, and returns a session
// token. The user row and the user.registered event commit atomically.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if err := s.enforceRegisterRateLimit(ctx, req.IPAddress); err != nil {
		return AuthResponse{}, err
	}

	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return AuthResponse{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return AuthResponse{}, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return AuthResponse{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	user, err := s.users.CreateWithOutboxTx(ctx, ports.CreateUserParams{
		Name:         req.Name,
		Email:        email,
		AvatarURL:    domain.GravatarURL(email),
		PasswordHash: hash,
		CreatedAt:    now,
	}, s.newOutboxEvent("user.registered", "", map[string]any{
		"email": email,
		"name":  req.Name,
	}))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the race against a concurrent registration for the same email.
			return AuthResponse{}, domain.ErrUserExists
		}
		return AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	s.logOperation(ctx, "register", "success", "user_id", user.UserID.String())
	return s.issueToken(user.UserID)
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.hasher.Compare(dummyPasswordHash, req.Password)
			return AuthResponse{}, domain.ErrInvalidCredentials
		}
		return AuthResponse{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.logOperation(ctx, "login", "failure", "user_id", user.UserID.String())
		return AuthResponse{}, domain.ErrInvalidCredentials
	}

	s.logOperation(ctx, "login", "success", "user_id", user.UserID.String())
	return s.issueToken(user.UserID)
}

// CurrentUser returns the authenticated account without the password hash.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ValidateToken parses and verifies a bearer token. Every failure mode
// (expired, tampered, malformed) collapses into ErrUnauthorized.
func (s *Service) ValidateToken(_ context.Context, raw string) (ports.AuthClaims, error) {
	claims, err := s.signer.ParseAndValidate(raw)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return claims, nil
}

func (s *Service) issueToken(userID uuid.UUID) (AuthResponse, error) {
	now := s.nowFn()
	token, err := s.signer.Sign(ports.AuthClaims{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResponse{Token: token}, nil
}

func (s *Service) enforceRegisterRateLimit(ctx context.Context, ip string) error {
	if s.cache == nil || s.cfg.RegisterRateLimitThreshold <= 0 || ip == "" {
		return nil
	}
	count, err := s.cache.IncrWithTTL(ctx, "ratelimit:register:"+ip, s.cfg.RegisterRateLimitWindow)
	if err != nil {
		// Rate limiting is advisory; registration must not depend on Redis.
		s.logOperation(ctx, "register_rate_limit", "warning", "error", err.Error())
		return nil
	}
	if count > int64(s.cfg.RegisterRateLimitThreshold) {
		return domain.ErrRateLimited
	}
	return nil
}
