package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// OtpTTL is how long an emailed verification code stays valid.
const OtpTTL = 10 * time.Minute

// GenerateOtp returns a uniformly random 6-digit code in [100000, 999999].
// The range excludes leading zeros on purpose: codes read as plain
// six-digit numbers everywhere they are displayed.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))

	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// OtpExpiry returns the expiry timestamp for a code issued now.
func OtpExpiry() time.Time {
	return time.Now().Add(OtpTTL)
}
