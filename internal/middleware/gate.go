package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/session"
	"github.com/gin-gonic/gin"
)

var (
	publicPaths = []string{"/", "/about", "/contact", "/services"}
	authPaths   = []string{"/sign-in", "/sign-up"}

	skipExact = map[string]bool{
		"/favicon.ico":      true,
		"/robots.txt":       true,
		"/sitemap.xml":      true,
		"/site.webmanifest": true,
	}

	skipExtensions = map[string]bool{
		".svg": true, ".png": true, ".jpg": true, ".jpeg": true,
		".pdf": true, ".gif": true, ".webp": true, ".css": true,
		".js": true, ".ico": true, ".map": true, ".woff": true,
		".woff2": true,
	}
)

// PageGate runs before every page navigation. It only ever redirects,
// never renders an error, and uses the stateless token check alone so a
// revoked-but-unexpired token still reaches the page shell (API calls
// from that shell resolve against the store and fail there).
func PageGate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestPath := ctx.Request.URL.Path

		// API routes, static assets and infra paths manage themselves.
		if skipGate(requestPath) {
			ctx.Next()
			return
		}

		authenticated := false

		if token := session.TokenFromRequest(ctx.Request); token != "" {
			if _, err := tokens.Verify(token); err == nil {
				authenticated = true
			}
		}

		if isPublicPath(requestPath) {
			ctx.Next()
			return
		}

		if authenticated && isAuthPath(requestPath) {
			returnURL := "/"

			if raw := ctx.Query("returnUrl"); raw != "" {
				if decoded, err := url.QueryUnescape(raw); err == nil && decoded != "" {
					returnURL = decoded
				}
			}

			ctx.Redirect(http.StatusFound, returnURL)
			ctx.Abort()
			return
		}

		if !authenticated && !isAuthPath(requestPath) {
			target := requestPath

			if query := ctx.Request.URL.RawQuery; query != "" {
				target += "?" + query
			}

			ctx.Redirect(http.StatusFound, "/sign-in?returnUrl="+url.QueryEscape(target))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func skipGate(requestPath string) bool {
	if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
		return true
	}

	if strings.HasPrefix(requestPath, "/monitoring") {
		return true
	}

	if skipExact[requestPath] {
		return true
	}

	return skipExtensions[path.Ext(requestPath)]
}

func isPublicPath(requestPath string) bool {
	for _, public := range publicPaths {
		if requestPath == public || strings.HasPrefix(requestPath, public+"/") {
			return true
		}
	}
	return false
}

func isAuthPath(requestPath string) bool {
	for _, authPath := range authPaths {
		if strings.HasPrefix(requestPath, authPath) {
			return true
		}
	}
	return false
}
