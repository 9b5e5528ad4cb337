package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	AvatarURL    string    `gorm:"column:avatar_url"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type profileModel struct {
	ProfileID      uuid.UUID `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id"`
	Company        string    `gorm:"column:company"`
	Website        string    `gorm:"column:website"`
	Location       string    `gorm:"column:location"`
	Status         string    `gorm:"column:status"`
	Bio            string    `gorm:"column:bio"`
	GithubUsername string    `gorm:"column:github_username"`
	Skills         string    `gorm:"column:skills;type:jsonb"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

type socialLinkModel struct {
	SocialLinkID uuid.UUID `gorm:"column:social_link_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id"`
	Platform     string    `gorm:"column:platform"`
	URL          string    `gorm:"column:url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (socialLinkModel) TableName() string { return "social_links" }

type experienceModel struct {
	ExperienceID uuid.UUID  `gorm:"column:experience_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID  `gorm:"column:user_id"`
	Position     int        `gorm:"column:position"`
	Title        string     `gorm:"column:title"`
	Company      string     `gorm:"column:company"`
	Location     string     `gorm:"column:location"`
	FromDate     time.Time  `gorm:"column:from_date"`
	ToDate       *time.Time `gorm:"column:to_date"`
	Current      bool       `gorm:"column:current"`
	Description  string     `gorm:"column:description"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (experienceModel) TableName() string { return "experiences" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "outbox" }
