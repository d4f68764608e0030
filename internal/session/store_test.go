package session

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(&models.User{}, &models.Session{}))

	tokens, err := auth.NewTokenService(strings.Repeat("s", 32))
	require.NoError(t, err)

	return NewStore(database, tokens), database
}

func newTestUser(t *testing.T, database *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:         "a@b.com",
		PasswordHash:  "hash",
		Role:          models.RoleStandard,
		EmailVerified: true,
	}
	require.NoError(t, database.Create(user).Error)

	return user
}

func TestCreateAndResolve(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	token, expiresAt, err := store.Create(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(auth.SessionTTL), expiresAt, time.Minute)

	var record models.Session
	require.NoError(t, database.Where("token = ?", token).First(&record).Error)
	assert.Equal(t, user.ID, record.UserID)
	assert.NotEmpty(t, record.ID)

	resolved, err := store.Resolve(token)
	require.NoError(t, err)
	require.NotNil(t, resolved)

	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "a@b.com", resolved.Email)
	assert.Equal(t, models.RoleStandard, resolved.Role)
	assert.True(t, resolved.EmailVerified)
}

func TestResolve_TokenEmbedsSessionID(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	token, _, err := store.Create(user)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(strings.Repeat("s", 32))
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)

	var record models.Session
	require.NoError(t, database.Where("token = ?", token).First(&record).Error)
	assert.Equal(t, record.ID, claims.SessionID)
}

func TestResolve_InvalidToken(t *testing.T) {
	store, _ := newTestStore(t)

	resolved, err := store.Resolve("garbage")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolve_RevokedSession(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	token, _, err := store.Create(user)
	require.NoError(t, err)

	// The token still verifies cryptographically, but the row is gone.
	require.NoError(t, database.Where("token = ?", token).Delete(&models.Session{}).Error)

	resolved, err := store.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolve_ExpiredSessionIsLazilyDeleted(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	token, _, err := store.Create(user)
	require.NoError(t, err)

	require.NoError(t, database.Model(&models.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	resolved, err := store.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	var count int64
	require.NoError(t, database.Model(&models.Session{}).Where("token = ?", token).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDestroy_IsIdempotent(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	token, _, err := store.Create(user)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(token))

	resolved, err := store.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Destroying an already-invalidated token is not an error.
	require.NoError(t, store.Destroy(token))
}

func TestCreate_AllowsConcurrentSessionsPerUser(t *testing.T) {
	store, database := newTestStore(t)
	user := newTestUser(t, database)

	first, _, err := store.Create(user)
	require.NoError(t, err)

	second, _, err := store.Create(user)
	require.NoError(t, err)

	firstUser, err := store.Resolve(first)
	require.NoError(t, err)
	require.NotNil(t, firstUser)

	secondUser, err := store.Resolve(second)
	require.NoError(t, err)
	require.NotNil(t, secondUser)

	// Revoking one device leaves the other signed in.
	require.NoError(t, store.Destroy(first))

	gone, err := store.Resolve(first)
	require.NoError(t, err)
	assert.Nil(t, gone)

	still, err := store.Resolve(second)
	require.NoError(t, err)
	assert.NotNil(t, still)
}
