package service

import (
	"testing"

	"warbler/internal/database"
	"warbler/internal/models"
	"warbler/internal/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	messages repository.MessageRepository
	follows  repository.FollowRepository
	likes    repository.LikeRepository

	auth    *AuthService
	user    *UserService
	message *MessageService
	social  *SocialService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		messages: repository.NewMessageRepository(db),
		follows:  repository.NewFollowRepository(db),
		likes:    repository.NewLikeRepository(db),
	}
	env.auth = NewAuthService(env.users)
	env.user = NewUserService(env.users)
	env.message = NewMessageService(env.messages)
	env.social = NewSocialService(env.follows, env.likes, env.users, env.messages)
	return env
}

func (e *testEnv) createUser(t *testing.T, username, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: string(hashed),
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}
