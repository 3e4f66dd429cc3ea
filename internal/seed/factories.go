// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// User creates a user with fake profile data. All seeded users share the
// given plaintext password so demo logins are possible.
func (f *Factory) User(password string, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       fmt.Sprintf("%s_%d", gofakeit.Username(), f.rnd.Intn(10000)),
		Email:          gofakeit.Email(),
		Password:       string(hashed),
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		Bio:            gofakeit.Sentence(8),
		Location:       gofakeit.City(),
	}
	for _, o := range overrides {
		o(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Warble creates a message owned by user with a realistic created_at spread
// over the past maxDays days.
func (f *Factory) Warble(user *models.User, maxDays int) (*models.Message, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	text := gofakeit.Sentence(6 + f.rnd.Intn(8))
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}

	message := &models.Message{
		Text:   text,
		UserID: user.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rnd.Intn(maxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rnd.Intn(24)) * time.Hour).
			Add(-time.Duration(f.rnd.Intn(60)) * time.Minute),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Follow creates a follower -> followed edge, ignoring duplicates.
func (f *Factory) Follow(follower, followed *models.User) error {
	edge := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	err := f.db.Create(&edge).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// Like creates a like edge, ignoring duplicates.
func (f *Factory) Like(user *models.User, message *models.Message) error {
	like := models.Like{UserID: user.ID, MessageID: message.ID}
	err := f.db.Create(&like).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
