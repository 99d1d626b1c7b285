package middleware

import (
	"net/http"
	"strings"

	"casedesk-backend/models"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the auth chain.
const (
	KeySession = "session"
	KeyUser    = "user"
	KeyUserID  = "user_id"
)

const bearerPrefix = "bearer "

// Auth wires the auth guard chain into gin.
type Auth struct {
	auth *service.AuthService
}

func NewAuth(auth *service.AuthService) *Auth {
	return &Auth{auth: auth}
}

// RequireSession resolves the bearer token to a live session.
func (a *Auth) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.session(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireUser resolves the session's user and rejects disabled accounts.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.user(c); !ok {
			return
		}
		c.Next()
	}
}

// RequirePermissions requires every listed permission, the default admin passes.
func (a *Auth) RequirePermissions(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.user(c)
		if !ok {
			return
		}
		if err := a.auth.RequirePermissions(c.Request.Context(), user, permissions...); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin requires the default admin or admin.manage.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.user(c)
		if !ok {
			return
		}
		if err := a.auth.RequireAdmin(c.Request.Context(), user); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (a *Auth) session(c *gin.Context) (*models.Session, bool) {
	if s, ok := SessionFrom(c); ok {
		return s, true
	}
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		Abort(c, http.StatusUnauthorized, "MISSING_AUTH_HEADER", "Missing Authorization header")
		return nil, false
	}
	s, err := a.auth.ResolveSession(c.Request.Context(), token)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	c.Set(KeySession, s)
	c.Set(KeyUserID, s.UserID)
	return s, true
}

func (a *Auth) user(c *gin.Context) (*models.User, bool) {
	if u, ok := UserFrom(c); ok {
		return u, true
	}
	s, ok := a.session(c)
	if !ok {
		return nil, false
	}
	u, err := a.auth.ResolveUser(c.Request.Context(), s)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	c.Set(KeyUser, u)
	return u, true
}

// SessionFrom returns the session resolved earlier in the chain.
func SessionFrom(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(KeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*models.Session)
	return s, ok
}

// UserFrom returns the user resolved earlier in the chain.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
