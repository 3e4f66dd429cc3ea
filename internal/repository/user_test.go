package repository

import (
	"context"
	"testing"

	"warbler/internal/cache"
	"warbler/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "testuser", Email: "testuser@test.com", Password: "HASHED"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)

	byName, err := repo.GetByUsername(ctx, "testuser")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "testuser@test.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepositoryCacheKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })

	user := createTestUser(t, db, "cached")
	require.NotEmpty(t, user.Password)

	// First read misses and populates the cache.
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Password, first.Password)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	// The cache hit must still carry the credential.
	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Password, second.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(second.Password), []byte("test")))
	assert.Equal(t, user.Username, second.Username)
	assert.Equal(t, user.Email, second.Email)
}

func TestUserRepositoryGetByUsernameMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	// An unknown username is a normal outcome, not an error.
	user, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "taken")

	err := repo.Create(ctx, &models.User{Username: "taken", Email: "other@test.com", Password: "HASHED"})
	require.Error(t, err)
	assert.True(t, models.IsIntegrity(err))
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "first")

	err := repo.Create(ctx, &models.User{Username: "second", Email: "first@test.com", Password: "HASHED"})
	require.Error(t, err)
	assert.True(t, models.IsIntegrity(err))
}

func TestUserRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "zed")
	createTestUser(t, db, "abby")
	createTestUser(t, db, "abel")

	all, err := repo.List(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "abby", all[0].Username)
	assert.Equal(t, "zed", all[2].Username)

	filtered, err := repo.List(ctx, "ab", 0, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	limited, err := repo.List(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUserRepositoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	victim := createTestUser(t, db, "victim")
	other := createTestUser(t, db, "other")

	victimMsg := createTestMessage(t, db, victim.ID, "mine")
	otherMsg := createTestMessage(t, db, other.ID, "theirs")

	// Likes in both directions, follows in both directions.
	require.NoError(t, db.Create(&models.Like{UserID: other.ID, MessageID: victimMsg.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: victim.ID, MessageID: otherMsg.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: victim.ID, FollowedID: other.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: other.ID, FollowedID: victim.ID}).Error)

	require.NoError(t, users.Delete(ctx, victim.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count)
	assert.Zero(t, count, "user row should be gone")

	db.Model(&models.Message{}).Where("user_id = ?", victim.ID).Count(&count)
	assert.Zero(t, count, "victim's messages should be gone")

	db.Model(&models.Like{}).Where("message_id = ?", victimMsg.ID).Count(&count)
	assert.Zero(t, count, "likes on victim's messages should be gone")

	db.Model(&models.Like{}).Where("user_id = ?", victim.ID).Count(&count)
	assert.Zero(t, count, "victim's own likes should be gone")

	db.Model(&models.Follow{}).Where("follower_id = ? OR followed_id = ?", victim.ID, victim.ID).Count(&count)
	assert.Zero(t, count, "follow edges touching the victim should be gone")

	// The other user and their message survive untouched.
	db.Model(&models.User{}).Where("id = ?", other.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Message{}).Where("id = ?", otherMsg.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "original")
	createTestUser(t, db, "occupied")

	user.Bio = "new bio"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new bio", got.Bio)

	// Renaming onto a taken username surfaces as an integrity error.
	user.Username = "occupied"
	err = repo.Update(ctx, user)
	require.Error(t, err)
	assert.True(t, models.IsIntegrity(err))
}
