package seed

import (
	"fmt"
	"log/slog"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options controls the size and shape of the seeded data set.
type Options struct {
	Users             int
	WarblesPerUser    int
	FollowProbability float64
	LikeProbability   float64
	Password          string
	MaxDays           int
}

// DefaultOptions returns a small, demo-friendly data set.
func DefaultOptions() Options {
	return Options{
		Users:             20,
		WarblesPerUser:    8,
		FollowProbability: 0.2,
		LikeProbability:   0.1,
		Password:          "warbler-demo",
		MaxDays:           90,
	}
}

// Run populates the database with a social mesh: users, their warbles,
// follow edges, and likes.
func Run(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		return fmt.Errorf("seed: Users must be positive")
	}
	if opts.Password == "" {
		return fmt.Errorf("seed: Password is required")
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	warbles := make([]*models.Message, 0, opts.Users*opts.WarblesPerUser)

	for i := 0; i < opts.Users; i++ {
		user, err := f.User(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		for j := 0; j < opts.WarblesPerUser; j++ {
			warble, err := f.Warble(user, opts.MaxDays)
			if err != nil {
				return fmt.Errorf("seed warble: %w", err)
			}
			warbles = append(warbles, warble)
		}
	}

	follows, likes := 0, 0
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID {
				continue
			}
			if f.rnd.Float64() < opts.FollowProbability {
				if err := f.Follow(follower, followed); err != nil {
					return fmt.Errorf("seed follow: %w", err)
				}
				follows++
			}
		}
	}
	for _, user := range users {
		for _, warble := range warbles {
			if f.rnd.Float64() < opts.LikeProbability {
				if err := f.Like(user, warble); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
				likes++
			}
		}
	}

	middleware.Logger.Info("seed complete",
		slog.Int("users", len(users)),
		slog.Int("warbles", len(warbles)),
		slog.Int("follows", follows),
		slog.Int("likes", likes),
	)
	return nil
}
