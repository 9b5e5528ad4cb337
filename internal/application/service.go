package application

import (
	"time"

	"github.com/KoustavFrost/devconnector/internal/ports"
)

type Config struct {
	ServiceName                string
	TokenTTL                   time.Duration
	ProfileCacheTTL            time.Duration
	RegisterRateLimitThreshold int
	RegisterRateLimitWindow    time.Duration
}

type Service struct {
	cfg      Config
	users    ports.UserRepository
	profiles ports.ProfileRepository
	hasher   ports.PasswordHasher
	signer   ports.TokenSigner
	cache    ports.Cache
	nowFn    func() time.Time
}

type Dependencies struct {
	Config   Config
	Users    ports.UserRepository
	Profiles ports.ProfileRepository
	Hasher   ports.PasswordHasher
	Signer   ports.TokenSigner
	Cache    ports.Cache
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "devconnector-api"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 100 * time.Hour
	}
	if cfg.ProfileCacheTTL <= 0 {
		cfg.ProfileCacheTTL = 5 * time.Minute
	}
	if cfg.RegisterRateLimitWindow <= 0 {
		cfg.RegisterRateLimitWindow = time.Minute
	}

	return &Service{
		cfg:      cfg,
		users:    deps.Users,
		profiles: deps.Profiles,
		hasher:   deps.Hasher,
		signer:   deps.Signer,
		cache:    deps.Cache,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}
