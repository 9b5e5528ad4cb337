package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

type profileRepository struct {
	db *gorm.DB
}

func (r *profileRepository) Upsert(ctx context.Context, params ports.UpsertProfileParams, event ports.OutboxEvent) (domain.Profile, error) {
	var result domain.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec profileModel
		err := tx.Where("user_id = ?", params.UserID).Take(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = profileModel{
				UserID:         params.UserID,
				Company:        deref(params.Company),
				Website:        deref(params.Website),
				Location:       deref(params.Location),
				Status:         deref(params.Status),
				Bio:            deref(params.Bio),
				GithubUsername: deref(params.GithubUsername),
				Skills:         marshalSkills(derefSkills(params.Skills)),
				CreatedAt:      params.UpdatedAt,
				UpdatedAt:      params.UpdatedAt,
			}
			if err := tx.Create(&rec).Error; err != nil {
				if isUniqueViolation(err) {
					return domain.ErrConflict
				}
				return err
			}
		case err != nil:
			return err
		default:
			updates := map[string]any{
				"updated_at": params.UpdatedAt,
			}
			if params.Company != nil {
				updates["company"] = *params.Company
			}
			if params.Website != nil {
				updates["website"] = *params.Website
			}
			if params.Location != nil {
				updates["location"] = *params.Location
			}
			if params.Status != nil {
				updates["status"] = *params.Status
			}
			if params.Bio != nil {
				updates["bio"] = *params.Bio
			}
			if params.GithubUsername != nil {
				updates["github_username"] = *params.GithubUsername
			}
			if params.Skills != nil {
				updates["skills"] = marshalSkills(*params.Skills)
			}
			if err := tx.Model(&profileModel{}).Where("user_id = ?", params.UserID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if params.Social != nil {
			if err := tx.Where("user_id = ?", params.UserID).Delete(&socialLinkModel{}).Error; err != nil {
				return err
			}
			for platform, url := range params.Social {
				// Unknown keys never reach the link table.
				if !domain.KnownSocialPlatform(platform) {
					continue
				}
				link := socialLinkModel{
					UserID:    params.UserID,
					Platform:  platform,
					URL:       url,
					CreatedAt: params.UpdatedAt,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}

		if err := enqueueOutboxTx(tx, event); err != nil {
			return err
		}

		loaded, err := loadProfileTx(tx, params.UserID)
		if err != nil {
			return err
		}
		result = loaded
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return result, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return loadProfileTx(r.db.WithContext(ctx), userID)
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	db := r.db.WithContext(ctx)

	var profiles []profileModel
	if err := db.Order("created_at asc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}

	var links []socialLinkModel
	if err := db.Where("user_id IN ?", userIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	linksByUser := make(map[uuid.UUID][]socialLinkModel)
	for _, link := range links {
		linksByUser[link.UserID] = append(linksByUser[link.UserID], link)
	}

	var experiences []experienceModel
	if err := db.Where("user_id IN ?", userIDs).Order("position asc").Find(&experiences).Error; err != nil {
		return nil, err
	}
	experiencesByUser := make(map[uuid.UUID][]experienceModel)
	for _, exp := range experiences {
		experiencesByUser[exp.UserID] = append(experiencesByUser[exp.UserID], exp)
	}

	out := make([]domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toDomainProfile(p, linksByUser[p.UserID], experiencesByUser[p.UserID]))
	}
	return out, nil
}

func (r *profileRepository) AddExperience(ctx context.Context, params ports.AddExperienceParams, event ports.OutboxEvent) (domain.Profile, error) {
	var result domain.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec profileModel
		if err := tx.Where("user_id = ?", params.UserID).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		// Lower positions sort first; each new entry takes min-1 so the
		// listing stays newest first without rewriting existing rows.
		var minPos struct {
			Min *int
		}
		if err := tx.Model(&experienceModel{}).
			Select("MIN(position) AS min").
			Where("user_id = ?", params.UserID).
			Scan(&minPos).Error; err != nil {
			return err
		}
		position := 0
		if minPos.Min != nil {
			position = *minPos.Min - 1
		}

		exp := experienceModel{
			UserID:      params.UserID,
			Position:    position,
			Title:       params.Title,
			Company:     params.Company,
			Location:    params.Location,
			FromDate:    params.From,
			ToDate:      params.To,
			Current:     params.Current,
			Description: params.Description,
			CreatedAt:   params.Now,
		}
		if err := tx.Create(&exp).Error; err != nil {
			return err
		}
		if err := tx.Model(&profileModel{}).Where("user_id = ?", params.UserID).Update("updated_at", params.Now).Error; err != nil {
			return err
		}

		if err := enqueueOutboxTx(tx, event); err != nil {
			return err
		}

		loaded, err := loadProfileTx(tx, params.UserID)
		if err != nil {
			return err
		}
		result = loaded
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return result, nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID, now time.Time, event ports.OutboxEvent) (domain.Profile, error) {
	var result domain.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec profileModel
		if err := tx.Where("user_id = ?", userID).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ? AND experience_id = ?", userID, experienceID).
			Delete(&experienceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&profileModel{}).Where("user_id = ?", userID).Update("updated_at", now).Error; err != nil {
			return err
		}

		if err := enqueueOutboxTx(tx, event); err != nil {
			return err
		}

		loaded, err := loadProfileTx(tx, userID)
		if err != nil {
			return err
		}
		result = loaded
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return result, nil
}

func loadProfileTx(tx *gorm.DB, userID uuid.UUID) (domain.Profile, error) {
	var rec profileModel
	if err := tx.Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}

	var links []socialLinkModel
	if err := tx.Where("user_id = ?", userID).Find(&links).Error; err != nil {
		return domain.Profile{}, err
	}

	var experiences []experienceModel
	if err := tx.Where("user_id = ?", userID).Order("position asc").Find(&experiences).Error; err != nil {
		return domain.Profile{}, err
	}

	return toDomainProfile(rec, links, experiences), nil
}

func enqueueOutboxTx(tx *gorm.DB, event ports.OutboxEvent) error {
	rec := outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      string(event.Payload),
		CreatedAt:    event.OccurredAt,
		FirstSeenAt:  event.OccurredAt,
	}
	return tx.Create(&rec).Error
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefSkills(skills *[]string) []string {
	if skills == nil {
		return nil
	}
	return *skills
}
