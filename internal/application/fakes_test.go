package application_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

type fixture struct {
	service  *application.Service
	users    *fakeUserRepository
	profiles *fakeProfileRepository
	cache    *fakeCache
	signer   *fakeSigner
}

func newFixture() *fixture {
	return newFixtureWithConfig(application.Config{})
}

func newFixtureWithConfig(cfg application.Config) *fixture {
	profiles := &fakeProfileRepository{profiles: map[uuid.UUID]domain.Profile{}}
	users := &fakeUserRepository{
		usersByID: map[uuid.UUID]domain.User{},
		idByEmail: map[string]uuid.UUID{},
		profiles:  profiles,
	}
	cache := &fakeCache{entries: map[string]string{}, counters: map[string]int64{}}
	signer := &fakeSigner{tokens: map[string]ports.AuthClaims{}}

	service := application.NewService(application.Dependencies{
		Config:   cfg,
		Users:    users,
		Profiles: profiles,
		Hasher:   &fakeHasher{},
		Signer:   signer,
		Cache:    cache,
	})
	return &fixture{service: service, users: users, profiles: profiles, cache: cache, signer: signer}
}

type fakeUserRepository struct {
	mu        sync.Mutex
	usersByID map[uuid.UUID]domain.User
	idByEmail map[string]uuid.UUID
	profiles  *fakeProfileRepository
	events    []ports.OutboxEvent
}

func (r *fakeUserRepository) CreateWithOutboxTx(_ context.Context, params ports.CreateUserParams, event ports.OutboxEvent) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.idByEmail[params.Email]; exists {
		return domain.User{}, domain.ErrConflict
	}
	user := domain.User{
		UserID:       uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		AvatarURL:    params.AvatarURL,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.CreatedAt,
		UpdatedAt:    params.CreatedAt,
	}
	r.usersByID[user.UserID] = user
	r.idByEmail[user.Email] = user.UserID
	r.events = append(r.events, event)
	return user, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.idByEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return r.usersByID[id], nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.usersByID[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) ListByIDs(_ context.Context, userIDs []uuid.UUID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := r.usersByID[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepository) DeleteWithOutboxTx(ctx context.Context, userID uuid.UUID, event ports.OutboxEvent) error {
	r.mu.Lock()
	user, ok := r.usersByID[userID]
	if ok {
		delete(r.usersByID, userID)
		delete(r.idByEmail, user.Email)
		r.events = append(r.events, event)
	}
	r.mu.Unlock()

	r.profiles.mu.Lock()
	delete(r.profiles.profiles, userID)
	r.profiles.mu.Unlock()
	return nil
}

type fakeProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.Profile
	events   []ports.OutboxEvent
}

func (r *fakeProfileRepository) Upsert(_ context.Context, params ports.UpsertProfileParams, event ports.OutboxEvent) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[params.UserID]
	if !exists {
		profile = domain.Profile{
			ProfileID: uuid.New(),
			UserID:    params.UserID,
			CreatedAt: params.UpdatedAt,
		}
	}
	if params.Company != nil {
		profile.Company = *params.Company
	}
	if params.Website != nil {
		profile.Website = *params.Website
	}
	if params.Location != nil {
		profile.Location = *params.Location
	}
	if params.Status != nil {
		profile.Status = *params.Status
	}
	if params.Bio != nil {
		profile.Bio = *params.Bio
	}
	if params.GithubUsername != nil {
		profile.GithubUsername = *params.GithubUsername
	}
	if params.Skills != nil {
		profile.Skills = append([]string(nil), (*params.Skills)...)
	}
	if params.Social != nil {
		profile.Social = make(map[string]string, len(params.Social))
		for platform, url := range params.Social {
			profile.Social[platform] = url
		}
	}
	profile.UpdatedAt = params.UpdatedAt

	r.profiles[params.UserID] = profile
	r.events = append(r.events, event)
	return profile, nil
}

func (r *fakeProfileRepository) GetByUserID(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepository) ListAll(_ context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, profile)
	}
	return out, nil
}

func (r *fakeProfileRepository) AddExperience(_ context.Context, params ports.AddExperienceParams, event ports.OutboxEvent) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[params.UserID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	entry := domain.Experience{
		ExperienceID: uuid.New(),
		Title:        params.Title,
		Company:      params.Company,
		Location:     params.Location,
		From:         params.From,
		To:           params.To,
		Current:      params.Current,
		Description:  params.Description,
		CreatedAt:    params.Now,
	}
	profile.Experience = append([]domain.Experience{entry}, profile.Experience...)
	profile.UpdatedAt = params.Now
	r.profiles[params.UserID] = profile
	r.events = append(r.events, event)
	return profile, nil
}

func (r *fakeProfileRepository) DeleteExperience(_ context.Context, userID, experienceID uuid.UUID, now time.Time, event ports.OutboxEvent) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	kept := make([]domain.Experience, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		if exp.ExperienceID != experienceID {
			kept = append(kept, exp)
		}
	}
	profile.Experience = kept
	profile.UpdatedAt = now
	r.profiles[userID] = profile
	r.events = append(r.events, event)
	return profile, nil
}

type fakeCache struct {
	mu       sync.Mutex
	entries  map[string]string
	counters map[string]int64
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type fakeSigner struct {
	mu     sync.Mutex
	tokens map[string]ports.AuthClaims
}

func (s *fakeSigner) Sign(claims ports.AuthClaims) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = claims
	return token, nil
}

func (s *fakeSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.tokens[raw]
	if !ok {
		return ports.AuthClaims{}, errors.New("unknown token")
	}
	if claims.ExpiresAt.Before(time.Now()) {
		return ports.AuthClaims{}, errors.New("token expired")
	}
	return claims, nil
}
