package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
)

// MessageService handles posting and deleting warbles.
type MessageService struct {
	messages repository.MessageRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Post creates a warble owned by userID.
func (s *MessageService) Post(ctx context.Context, userID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("warble text is required")
	}
	if len(text) > models.MaxMessageLength {
		return nil, models.NewValidationError("warble text must not exceed 140 characters")
	}

	message := &models.Message{Text: text, UserID: userID}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.WarblesCreated.Inc()
	return message, nil
}

// Get returns a warble by id; unknown ids yield a not-found error.
func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// ListByUser returns a user's warbles newest-first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messages.ListByUser(ctx, userID, 0)
}

// Delete removes a warble. Only the owner may delete it; any other actor
// gets an unauthorized error and the row is left untouched.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != actorID {
		return models.NewUnauthorizedError("Access unauthorized.")
	}
	return s.messages.Delete(ctx, messageID)
}
