package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService(strings.Repeat("g", 32))
	require.NoError(t, err)

	r := gin.New()
	r.Use(PageGate(tokens))
	r.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "page")
	})

	return r, tokens
}

func gateRequest(r *gin.Engine, target string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)

	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestPageGate_Unauthenticated(t *testing.T) {
	r, _ := newGateRouter(t)

	cases := []struct {
		name     string
		target   string
		wantCode int
		wantLoc  string
	}{
		{"home is public", "/", http.StatusOK, ""},
		{"about is public", "/about", http.StatusOK, ""},
		{"about subpage is public", "/about/team", http.StatusOK, ""},
		{"contact is public", "/contact", http.StatusOK, ""},
		{"services is public", "/services", http.StatusOK, ""},
		{"sign-in reachable", "/sign-in", http.StatusOK, ""},
		{"sign-up reachable", "/sign-up", http.StatusOK, ""},
		{"dashboard redirects", "/dashboard", http.StatusFound, "/sign-in?returnUrl=%2Fdashboard"},
		{"query preserved", "/mood-diary?view=week", http.StatusFound, "/sign-in?returnUrl=%2Fmood-diary%3Fview%3Dweek"},
		{"api bypasses gate", "/api/auth/me", http.StatusOK, ""},
		{"asset bypasses gate", "/logo.svg", http.StatusOK, ""},
		{"favicon bypasses gate", "/favicon.ico", http.StatusOK, ""},
		{"monitoring bypasses gate", "/monitoring/ping", http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := gateRequest(r, tc.target, "")

			assert.Equal(t, tc.wantCode, w.Code)

			if tc.wantLoc != "" {
				assert.Equal(t, tc.wantLoc, w.Header().Get("Location"))
			}
		})
	}
}

func TestPageGate_Authenticated(t *testing.T) {
	r, tokens := newGateRouter(t)

	token, err := tokens.Issue("user-1", "a@b.com", "standard", "session-1")
	require.NoError(t, err)

	// Protected pages are reachable.
	w := gateRequest(r, "/dashboard", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Auth pages bounce back to the return URL.
	w = gateRequest(r, "/sign-in?returnUrl=%2Fworkout", token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/workout", w.Header().Get("Location"))

	// Without a return URL, home.
	w = gateRequest(r, "/sign-up", token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPageGate_InvalidTokenTreatedAsUnauthenticated(t *testing.T) {
	r, _ := newGateRouter(t)

	w := gateRequest(r, "/dashboard", "garbage-token")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sign-in?returnUrl=%2Fdashboard", w.Header().Get("Location"))
}
