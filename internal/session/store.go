package session

import (
	"errors"
	"log"
	"time"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/models"
	"github.com/athera-ai/athera/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store owns the durable session rows. A token that verifies
// cryptographically but has no live row here is invalid: the row is the
// revocation anchor.
type Store struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

func NewStore(db *gorm.DB, tokens *auth.TokenService) *Store {
	return &Store{db: db, tokens: tokens}
}

// Create opens a session for user and returns the signed token plus its
// expiry. The session id is generated up front so the token can embed it
// and the row is written exactly once.
func (s *Store) Create(user *models.User) (string, time.Time, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(auth.SessionTTL)

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, sessionID)

	if err != nil {
		return "", time.Time{}, err
	}

	record := models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Resolve maps a token to the session's user. It returns (nil, nil) for
// every flavor of invalid: bad signature, unknown token, revoked or
// expired session. Found-but-expired rows are deleted on the way out.
func (s *Store) Resolve(tokenString string) (*types.SessionUser, error) {
	if _, err := s.tokens.Verify(tokenString); err != nil {
		return nil, nil
	}

	var record models.Session

	err := s.db.Preload("User").Where("token = ?", tokenString).First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if !record.ExpiresAt.After(time.Now()) {
		if err := s.db.Delete(&models.Session{}, "id = ?", record.ID).Error; err != nil {
			log.Printf("Failed to delete expired session %s: %v", record.ID, err)
		}
		return nil, nil
	}

	return &types.SessionUser{
		ID:            record.User.ID,
		Email:         record.User.Email,
		Name:          record.User.Name,
		Role:          record.User.Role,
		EmailVerified: record.User.EmailVerified,
	}, nil
}

// Destroy revokes every session carrying the token. Deleting zero rows is
// fine; logout stays idempotent.
func (s *Store) Destroy(tokenString string) error {
	return s.db.Where("token = ?", tokenString).Delete(&models.Session{}).Error
}
