package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// SocialService handles follow edges and the like index.
type SocialService struct {
	follows  repository.FollowRepository
	likes    repository.LikeRepository
	users    repository.UserRepository
	messages repository.MessageRepository
}

// NewSocialService returns a new SocialService.
func NewSocialService(
	follows repository.FollowRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	messages repository.MessageRepository,
) *SocialService {
	return &SocialService{follows: follows, likes: likes, users: users, messages: messages}
}

// Follow adds the follower -> followed edge. Following someone who is
// already followed is treated as success.
func (s *SocialService) Follow(ctx context.Context, followerID, followedID uint) (*models.User, error) {
	followed, err := s.users.GetByID(ctx, followedID)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Follow(ctx, followerID, followedID); err != nil && !models.IsIntegrity(err) {
		return nil, err
	}
	return followed, nil
}

// Unfollow removes the edge and returns the no-longer-followed user.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followedID uint) (*models.User, error) {
	followed, err := s.users.GetByID(ctx, followedID)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Unfollow(ctx, followerID, followedID); err != nil {
		return nil, err
	}
	return followed, nil
}

// IsFollowing reports whether a follower -> followed edge exists.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followedID)
}

// IsFollowedBy reports whether an other -> user edge exists.
func (s *SocialService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.follows.IsFollowing(ctx, otherID, userID)
}

// Following returns the users that userID follows.
func (s *SocialService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Following(ctx, userID)
}

// Followers returns the users following userID.
func (s *SocialService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Followers(ctx, userID)
}

// ToggleLike flips the like edge for (userID, messageID): present means
// remove, absent means add. It returns the resulting liked state. The
// toggle-on-POST semantics are a preserved compatibility contract; repeated
// identical requests alternate state rather than being idempotent.
func (s *SocialService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	if _, err := s.messages.GetByID(ctx, messageID); err != nil {
		return false, err
	}

	liked, err := s.likes.Exists(ctx, userID, messageID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.likes.Remove(ctx, userID, messageID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.likes.Add(ctx, userID, messageID); err != nil {
		// A concurrent toggle may have inserted the edge first.
		if models.IsIntegrity(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListLiked returns the messages userID has liked.
func (s *SocialService) ListLiked(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likes.ListMessagesLikedBy(ctx, userID)
}

// Timeline returns the warbles of the users userID follows plus their own,
// newest-first, capped at limit.
func (s *SocialService) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, userID)
	return s.messages.ListByUsers(ctx, ids, limit)
}
