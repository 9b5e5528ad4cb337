package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

// UpsertProfile creates the profile on first write and applies sparse updates
// afterwards. Skills are parsed from their comma-separated form; the social
// map is rebuilt from the supplied keys only when at least one is present.
func (s *Service) UpsertProfile(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (ProfileResponse, error) {
	params := ports.UpsertProfileParams{
		UserID:         userID,
		Company:        trimmed(req.Company),
		Website:        trimmed(req.Website),
		Location:       trimmed(req.Location),
		Status:         trimmed(req.Status),
		Bio:            trimmed(req.Bio),
		GithubUsername: trimmed(req.GithubUsername),
		UpdatedAt:      s.nowFn(),
	}
	if req.Skills != nil {
		skills := domain.ParseSkills(*req.Skills)
		params.Skills = &skills
	}
	params.Social = buildSocial(req)

	profile, err := s.profiles.Upsert(ctx, params,
		s.newOutboxEvent("profile.updated", userID.String(), map[string]any{
			"user_id": userID.String(),
		}))
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("upsert profile: %w", err)
	}
	s.invalidateProfileCache(ctx, userID)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("load profile owner: %w", err)
	}
	s.logOperation(ctx, "upsert_profile", "success", "user_id", userID.String())
	return toProfileResponse(profile, user), nil
}

// GetMyProfile returns the caller's own profile.
func (s *Service) GetMyProfile(ctx context.Context, userID uuid.UUID) (ProfileResponse, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ProfileResponse{}, domain.ErrProfileNotFound
		}
		return ProfileResponse{}, fmt.Errorf("load profile: %w", err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("load profile owner: %w", err)
	}
	return toProfileResponse(profile, user), nil
}

// GetProfileByUserID is the public single-profile read, served from cache
// when possible.
func (s *Service) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (ProfileResponse, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKeyProfile(userID)); err == nil && raw != "" {
			var cached ProfileResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	res, err := s.GetMyProfile(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(res); err == nil {
			_ = s.cache.Set(ctx, cacheKeyProfile(userID), string(raw), s.cfg.ProfileCacheTTL)
		}
	}
	return res, nil
}

// ListProfiles returns every profile with its public user projection.
func (s *Service) ListProfiles(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load profile owners: %w", err)
	}
	usersByID := make(map[uuid.UUID]domain.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p, usersByID[p.UserID]))
	}
	return out, nil
}

// AddExperience prepends a work experience entry so listings stay newest
// first. The profile must already exist.
func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, req AddExperienceRequest) (ProfileResponse, error) {
	profile, err := s.profiles.AddExperience(ctx, ports.AddExperienceParams{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
		Now:         s.nowFn(),
	}, s.newOutboxEvent("profile.updated", userID.String(), map[string]any{
		"user_id": userID.String(),
	}))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ProfileResponse{}, domain.ErrProfileNotFound
		}
		return ProfileResponse{}, fmt.Errorf("add experience: %w", err)
	}
	s.invalidateProfileCache(ctx, userID)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("load profile owner: %w", err)
	}
	s.logOperation(ctx, "add_experience", "success", "user_id", userID.String())
	return toProfileResponse(profile, user), nil
}

// DeleteExperience removes a single experience entry from the profile.
func (s *Service) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) (ProfileResponse, error) {
	profile, err := s.profiles.DeleteExperience(ctx, userID, experienceID, s.nowFn(),
		s.newOutboxEvent("profile.updated", userID.String(), map[string]any{
			"user_id": userID.String(),
		}))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ProfileResponse{}, domain.ErrProfileNotFound
		}
		return ProfileResponse{}, fmt.Errorf("delete experience: %w", err)
	}
	s.invalidateProfileCache(ctx, userID)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("load profile owner: %w", err)
	}
	return toProfileResponse(profile, user), nil
}

// DeleteAccount removes the profile and the user in one transaction and is
// safe to repeat.
// TODO: remove the user's posts once the content service exposes a bulk delete.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.users.DeleteWithOutboxTx(ctx, userID,
		s.newOutboxEvent("user.deleted", userID.String(), map[string]any{
			"user_id": userID.String(),
		}))
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.invalidateProfileCache(ctx, userID)
	s.logOperation(ctx, "delete_account", "success", "user_id", userID.String())
	return nil
}

func (s *Service) invalidateProfileCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cacheKeyProfile(userID))
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}

// buildSocial collects the supplied platform URLs. A nil return means no
// social field was present and the stored set stays untouched.
func buildSocial(req UpsertProfileRequest) map[string]string {
	supplied := map[string]*string{
		"youtube":   req.Youtube,
		"twitter":   req.Twitter,
		"facebook":  req.Facebook,
		"linkedin":  req.Linkedin,
		"instagram": req.Instagram,
	}
	var social map[string]string
	for platform, value := range supplied {
		if value == nil {
			continue
		}
		if social == nil {
			social = make(map[string]string)
		}
		if url := strings.TrimSpace(*value); url != "" {
			social[platform] = url
		}
	}
	return social
}
