package application

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// UserResponse is the authenticated account view. The password hash never
// appears here.
type UserResponse struct {
	UserID    uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertProfileRequest uses pointer fields so absent values can be told apart
// from empty ones; absent fields stay untouched on update. Skills is the raw
// comma-separated form.
type UpsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type AddExperienceRequest struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// ProfileUser is the public projection of the owning account.
type ProfileUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

type ExperienceResponse struct {
	ExperienceID uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type ProfileResponse struct {
	ProfileID      uuid.UUID            `json:"id"`
	UserID         uuid.UUID            `json:"user_id"`
	User           ProfileUser          `json:"user"`
	Company        string               `json:"company,omitempty"`
	Website        string               `json:"website,omitempty"`
	Location       string               `json:"location,omitempty"`
	Status         string               `json:"status"`
	Bio            string               `json:"bio,omitempty"`
	GithubUsername string               `json:"githubusername,omitempty"`
	Skills         []string             `json:"skills"`
	Social         map[string]string    `json:"social,omitempty"`
	Experience     []ExperienceResponse `json:"experience"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
