package types

// SessionUser is the public projection of a user attached to a resolved
// session. It is both the middleware context value and the JSON shape
// returned by the auth endpoints.
type SessionUser struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          *string `json:"name"`
	Role          string  `json:"role"`
	EmailVerified bool    `json:"emailVerified"`
}
