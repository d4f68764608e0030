package middleware

import (
	"log"
	"net/http"

	"github.com/athera-ai/athera/internal/session"
	"github.com/athera-ai/athera/internal/types"
	"github.com/gin-gonic/gin"
)

// RequireAuth guards API routes that need a resolved session, not just a
// verifiable token. It reads the session cookie, resolves it against the
// store and puts the user on the request context.
func RequireAuth(sessions *session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := session.TokenFromRequest(ctx.Request)

		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := sessions.Resolve(token)

		if err != nil {
			log.Printf("Failed to resolve session: %v", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		ctx.Set(types.ContextUserKey, *user)
		ctx.Next()
	}
}
