package mailer

import "log"

// Mailer dispatches a verification code out-of-band. Delivery is an
// external collaborator; the auth core only hands the job off.
type Mailer interface {
	SendOtp(email, otp string) error
}

// LogMailer stands in for a real provider outside production: the code
// is written to the server log and nowhere else.
type LogMailer struct{}

func (LogMailer) SendOtp(email, otp string) error {
	log.Printf("[DEV] OTP for %s: %s", email, otp)
	return nil
}
