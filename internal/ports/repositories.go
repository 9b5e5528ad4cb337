package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/domain"
)

type CreateUserParams struct {
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
}

// UpsertProfileParams carries sparse profile updates: nil pointers leave the
// stored value untouched. Social, when non-nil, replaces the stored link set
// wholesale with the supplied keys.
type UpsertProfileParams struct {
	UserID         uuid.UUID
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         *[]string
	Social         map[string]string
	UpdatedAt      time.Time
}

type AddExperienceParams struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
	Now         time.Time
}

type UserRepository interface {
	// CreateWithOutboxTx inserts the user and the registration event in one
	// transaction. Duplicate email surfaces as domain.ErrConflict.
	CreateWithOutboxTx(ctx context.Context, params CreateUserParams, event OutboxEvent) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	ListByIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.User, error)
	// DeleteWithOutboxTx removes the user and everything hanging off it
	// (profile, social links, experiences) in one transaction. Deleting an
	// absent user is a no-op and enqueues nothing.
	DeleteWithOutboxTx(ctx context.Context, userID uuid.UUID, event OutboxEvent) error
}

type ProfileRepository interface {
	// Upsert creates the profile on first write and applies sparse updates
	// afterwards, together with the outbox event, in one transaction.
	Upsert(ctx context.Context, params UpsertProfileParams, event OutboxEvent) (domain.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	// AddExperience prepends the entry so listings stay newest first.
	// Missing profile surfaces as domain.ErrNotFound.
	AddExperience(ctx context.Context, params AddExperienceParams, event OutboxEvent) (domain.Profile, error)
	DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID, now time.Time, event OutboxEvent) (domain.Profile, error)
}

type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
