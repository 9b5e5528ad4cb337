package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	JWTSecret         string
	AllowEphemeralJWT bool

	BcryptCost int
	TokenTTL   time.Duration

	ProfileCacheTTL            time.Duration
	RegisterRateLimitThreshold int
	RegisterRateLimitWindow    time.Duration

	KafkaBrokers             []string
	KafkaTopicUserRegistered string
	KafkaTopicUserDeleted    string
	KafkaTopicProfileUpdated string

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Kafka struct {
		Brokers             []string `yaml:"brokers"`
		TopicUserRegistered string   `yaml:"topic_user_registered"`
		TopicUserDeleted    string   `yaml:"topic_user_deleted"`
		TopicProfileUpdated string   `yaml:"topic_profile_updated"`
	} `yaml:"kafka"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                  "devconnector-api",
		HTTPPort:                   8080,
		GRPCPort:                   9090,
		AllowEphemeralJWT:          true,
		BcryptCost:                 10,
		TokenTTL:                   100 * time.Hour,
		ProfileCacheTTL:            5 * time.Minute,
		RegisterRateLimitThreshold: 20,
		RegisterRateLimitWindow:    time.Minute,
		KafkaTopicUserRegistered:   "user.registered",
		KafkaTopicUserDeleted:      "user.deleted",
		KafkaTopicProfileUpdated:   "profile.updated",
		MaxDBConns:                 20,
		OutboxPollInterval:         2 * time.Second,
		OutboxBatchSize:            100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Kafka.Brokers) > 0 {
			cfg.KafkaBrokers = f.Kafka.Brokers
		}
		if f.Kafka.TopicUserRegistered != "" {
			cfg.KafkaTopicUserRegistered = f.Kafka.TopicUserRegistered
		}
		if f.Kafka.TopicUserDeleted != "" {
			cfg.KafkaTopicUserDeleted = f.Kafka.TopicUserDeleted
		}
		if f.Kafka.TopicProfileUpdated != "" {
			cfg.KafkaTopicProfileUpdated = f.Kafka.TopicProfileUpdated
		}
		if f.Auth.JWTSecret != "" {
			cfg.JWTSecret = f.Auth.JWTSecret
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.AllowEphemeralJWT = envBool("JWT_ALLOW_EPHEMERAL", cfg.AllowEphemeralJWT)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.RegisterRateLimitThreshold = envInt("REGISTER_RATE_LIMIT_THRESHOLD", cfg.RegisterRateLimitThreshold)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.TokenTTL = time.Duration(envInt("TOKEN_EXPIRY_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.ProfileCacheTTL = time.Duration(envInt("PROFILE_CACHE_TTL_SECONDS", int(cfg.ProfileCacheTTL.Seconds()))) * time.Second
	cfg.RegisterRateLimitWindow = time.Duration(envInt("REGISTER_RATE_LIMIT_WINDOW_SECONDS", int(cfg.RegisterRateLimitWindow.Seconds()))) * time.Second
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.JWTSecret == "" && !cfg.AllowEphemeralJWT {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
