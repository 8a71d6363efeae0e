package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const actorIDKey = contextKey("actorID")

// ActorHeader is the header the API gateway sets after authenticating the
// caller. Authentication itself happens upstream; this service only trusts
// the propagated identity.
const ActorHeader = "X-Actor-ID"

// ActorIdentity creates a Gin middleware that extracts the acting user ID
// from the gateway header and stores it in the request context. Requests
// without an identity are rejected.
func ActorIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Missing actor identity header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + ActorHeader + " header"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("actor_id", actorID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal := c.Request.Context().Value(actorIDKey)
	if actorIDVal == nil {
		return "", false
	}
	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}
	return actorID, true
}
