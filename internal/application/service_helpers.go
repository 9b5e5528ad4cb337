package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

func (s *Service) newOutboxEvent(eventType, partitionKey string, payload map[string]any) ports.OutboxEvent {
	if payload == nil {
		payload = map[string]any{}
	}
	now := s.nowFn()
	payload["occurred_at"] = now.Format(time.RFC3339)
	raw, _ := json.Marshal(payload)
	return ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      raw,
		OccurredAt:   now,
	}
}

func (s *Service) logOperation(ctx context.Context, operation, outcome string, extra ...any) {
	fields := append([]any{
		"service", s.cfg.ServiceName,
		"module", "application",
		"layer", "application",
		"operation", operation,
		"outcome", outcome,
	}, extra...)
	if outcome == "failure" {
		slog.Default().WarnContext(ctx, "operation completed", fields...)
		return
	}
	slog.Default().InfoContext(ctx, "operation completed", fields...)
}

func cacheKeyProfile(userID uuid.UUID) string {
	return "profile:user:" + userID.String()
}

func toUserResponse(user domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

func toProfileResponse(profile domain.Profile, user domain.User) ProfileResponse {
	experiences := make([]ExperienceResponse, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		experiences = append(experiences, ExperienceResponse{
			ExperienceID: exp.ExperienceID,
			Title:        exp.Title,
			Company:      exp.Company,
			Location:     exp.Location,
			From:         exp.From,
			To:           exp.To,
			Current:      exp.Current,
			Description:  exp.Description,
		})
	}
	skills := profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		ProfileID:      profile.ProfileID,
		UserID:         profile.UserID,
		User:           ProfileUser{Name: user.Name, AvatarURL: user.AvatarURL},
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Status:         profile.Status,
		Bio:            profile.Bio,
		GithubUsername: profile.GithubUsername,
		Skills:         skills,
		Social:         profile.Social,
		Experience:     experiences,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}
