package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KoustavFrost/devconnector/internal/domain"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) CreateWithOutboxTx(ctx context.Context, params ports.CreateUserParams, event ports.OutboxEvent) (domain.User, error) {
	var result domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := userModel{
			Name:         params.Name,
			Email:        params.Email,
			AvatarURL:    params.AvatarURL,
			PasswordHash: params.PasswordHash,
			CreatedAt:    params.CreatedAt,
			UpdatedAt:    params.CreatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}

		payload := event.Payload
		if len(payload) == 0 {
			payload = []byte(`{}`)
		}
		var payloadObj map[string]any
		if err := json.Unmarshal(payload, &payloadObj); err == nil {
			payloadObj["user_id"] = rec.UserID.String()
			if adjusted, mErr := json.Marshal(payloadObj); mErr == nil {
				payload = adjusted
			}
		}

		outbox := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: rec.UserID.String(),
			Payload:      string(payload),
			CreatedAt:    event.OccurredAt,
			FirstSeenAt:  event.OccurredAt,
		}
		if err := tx.Create(&outbox).Error; err != nil {
			return err
		}

		result = toDomainUser(rec)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) ListByIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []userModel
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainUser(row))
	}
	return out, nil
}

func (r *userRepository) DeleteWithOutboxTx(ctx context.Context, userID uuid.UUID, event ports.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&experienceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&socialLinkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&profileModel{}).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&userModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already gone; repeated deletes stay silent.
			return nil
		}

		outbox := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      string(event.Payload),
			CreatedAt:    event.OccurredAt,
			FirstSeenAt:  event.OccurredAt,
		}
		return tx.Create(&outbox).Error
	})
}
