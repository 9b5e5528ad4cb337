package postgres

import (
	"gorm.io/gorm"

	"github.com/KoustavFrost/devconnector/internal/ports"
)

// Repositories bundles the concrete Postgres-backed ports for wiring.
type Repositories struct {
	Users    ports.UserRepository
	Profiles ports.ProfileRepository
	Outbox   ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    &userRepository{db: db},
		Profiles: &profileRepository{db: db},
		Outbox:   &outboxRepository{db: db},
	}
}
