package otp

import (
	"errors"
	"log"
	"time"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/mailer"
	"github.com/athera-ai/athera/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateAccount means the address already belongs to a verified
	// user.
	ErrDuplicateAccount = errors.New("an account with this email already exists")

	// ErrInvalidOrExpired deliberately conflates wrong-code, wrong-email
	// and expired-code so responses carry no enumeration signal.
	ErrInvalidOrExpired = errors.New("invalid or expired verification code")
)

// Issuer stages pending signups and turns a verified code into a user.
type Issuer struct {
	db   *gorm.DB
	mail mailer.Mailer
}

func NewIssuer(db *gorm.DB, mail mailer.Mailer) *Issuer {
	return &Issuer{db: db, mail: mail}
}

// Issue stages a signup for email: hashes the password, replaces any
// pending code for the address and dispatches the fresh one. The emails
// passed in must already be normalized. The code is returned so
// non-production responses can surface it.
func (i *Issuer) Issue(email, password string) (string, error) {
	var existing models.User

	err := i.db.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return "", ErrDuplicateAccount
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	passwordHash, err := auth.HashPassword(password)

	if err != nil {
		return "", err
	}

	code, err := auth.GenerateOtp()

	if err != nil {
		return "", err
	}

	record := models.OtpVerification{
		Email:        email,
		Otp:          code,
		PasswordHash: passwordHash,
		ExpiresAt:    auth.OtpExpiry(),
	}

	// Delete-then-insert in one transaction keeps the one-live-code-per-
	// email invariant even under concurrent reissue.
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.OtpVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})

	if err != nil {
		return "", err
	}

	// Delivery failures don't fail the request; the user can re-request.
	if err := i.mail.SendOtp(email, code); err != nil {
		log.Printf("Failed to dispatch OTP email to %s: %v", email, err)
	}

	return code, nil
}

// Verify exchanges a live code for a verified user. Creating the user and
// deleting the staged row happen in one transaction; the unique index on
// users.email backstops concurrent verifies of the same code.
func (i *Issuer) Verify(email, code string) (*models.User, error) {
	var pending models.OtpVerification

	err := i.db.Where("email = ? AND otp = ? AND expires_at > ?", email, code, time.Now()).
		First(&pending).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidOrExpired
	}

	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  pending.PasswordHash,
		Role:          models.RoleStandard,
		EmailVerified: true,
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OtpVerification{}, "id = ?", pending.ID).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a verify race or the account appeared since the lookup.
		return nil, ErrInvalidOrExpired
	}

	if err != nil {
		return nil, err
	}

	return user, nil
}
