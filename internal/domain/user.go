package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account aggregate. PasswordHash never leaves the application
// layer; public reads project only Name and AvatarURL.
type User struct {
	UserID       uuid.UUID
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
