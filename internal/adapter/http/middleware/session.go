package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/session"
)

const identityKey = "identity"

// Session resolves the cookie-backed identity for every request. Resolution
// never aborts: anonymous requests simply carry no identity, and each handler
// decides what that means for it.
type Session struct {
	mgr        *session.Manager
	cookieName string
}

func NewSession(mgr *session.Manager, cookieName string) *Session {
	return &Session{mgr: mgr, cookieName: cookieName}
}

func (s *Session) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(s.cookieName)
		if err == nil && raw != "" {
			if id, perr := s.mgr.Parse(raw); perr == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates the reporting surface. Anyone without the admin flag
// gets 403, authenticated or not, before any store access happens.
func (s *Session) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok || !id.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admins only"})
			return
		}
		c.Next()
	}
}

// Identity returns the resolved session identity, if any.
func Identity(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}
