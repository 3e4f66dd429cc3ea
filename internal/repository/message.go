package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for warbles.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	ListByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Message, error)
	ListRecent(ctx context.Context, limit int) ([]models.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	key := cache.MessageKey(id)

	err := cache.Aside(ctx, key, &message, cache.MessageTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByUser returns the user's warbles newest-first.
func (r *messageRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), limit)
}

// ListByUsers returns the combined timeline of the given users, newest-first.
func (r *messageRepository) ListByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Message, error) {
	if len(userIDs) == 0 {
		return []models.Message{}, nil
	}
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id IN ?", userIDs), limit)
}

func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	return r.list(ctx, r.db.WithContext(ctx), limit)
}

func (r *messageRepository) list(ctx context.Context, db *gorm.DB, limit int) ([]models.Message, error) {
	var messages []models.Message
	db = db.Preload("User").Order("created_at DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Delete removes the message and its likes atomically.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}
