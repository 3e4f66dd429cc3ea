package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for like edges.
type LikeRepository interface {
	Add(ctx context.Context, userID, messageID uint) error
	Remove(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	ListMessagesLikedBy(ctx context.Context, userID uint) ([]models.Message, error)
	CountForMessage(ctx context.Context, messageID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Add(ctx context.Context, userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewIntegrityError("message already liked", err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Remove(ctx context.Context, userID, messageID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListMessagesLikedBy returns the messages userID has liked, newest-like-first.
func (r *likeRepository) ListMessagesLikedBy(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Table("messages").
		Joins("JOIN likes l ON messages.id = l.message_id").
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC").
		Preload("User").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *likeRepository) CountForMessage(ctx context.Context, messageID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", messageID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
