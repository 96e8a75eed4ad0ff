package middleware

import (
	"net/http"
	"strings"
	"time"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/redis"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the login cookie holding the session id.
const SessionCookie = "session_id"

// Context keys set by RequireAuth.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxSuperuser = "is_superuser"
)

// RequireAuth resolves the session cookie against Redis and loads the acting
// user into the request context. Each hit slides the session TTL forward.
func RequireAuth(sessions *redis.Client, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión."})
			return
		}

		session, err := sessions.GetSession(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión expirada. Inicia sesión nuevamente."})
			return
		}
		sessions.RefreshSession(sessionID, sessionTTL)

		c.Set(CtxUserID, session.UserID)
		c.Set(CtxUsername, session.Username)
		c.Set(CtxRole, session.Role)
		c.Set(CtxSuperuser, session.IsSuperuser)
		c.Next()
	}
}

// RequireAdmin gates back-office routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if c.GetBool(CtxSuperuser) || strings.EqualFold(role, string(models.RoleAdmin)) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No tienes permiso para acceder a esta página."})
	}
}

// UserID returns the authenticated user's id from the context.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
