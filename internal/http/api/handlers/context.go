package handlers

import (
	"net/http"

	"gestao_laser/internal/config"
	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
)

// userContextKey stores the resolved session user in the gin context.
const userContextKey = "sessionUser"

// SessionUser is the authenticated principal attached to each request by
// the session gate. The password hash is never loaded.
type SessionUser struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	ClienteID *string `json:"clienteId"`
}

// IsCliente reports whether the user has the restricted cliente role.
func (u *SessionUser) IsCliente() bool {
	return u != nil && u.Role == models.RoleCliente
}

// SetCurrentUser attaches the resolved user to the request context.
func SetCurrentUser(c *gin.Context, user *SessionUser) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the resolved session user, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *SessionUser {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*SessionUser)
	return user
}

// RequireUser returns the session user or aborts with a redirect to the
// login page. Handlers call it at the top of every load and action.
func RequireUser(c *gin.Context) (*SessionUser, bool) {
	user := CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusSeeOther, settings.LoginPath)
		c.Abort()
		return nil, false
	}
	return user, true
}

// SetSessionCookie issues the session cookie for a logged-in user. The
// cookie value is the user id; remember extends the lifetime to 30 days.
func SetSessionCookie(c *gin.Context, sess config.SessionConfig, userID string, remember bool) {
	maxAge := settings.SessionMaxAgeSeconds
	if remember {
		maxAge = settings.SessionRememberMaxAgeSeconds
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(settings.SessionCookieName, userID, maxAge, "/", "", sess.Secure, true)
}

// ClearSessionCookie deletes the session cookie.
func ClearSessionCookie(c *gin.Context, sess config.SessionConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(settings.SessionCookieName, "", -1, "/", "", sess.Secure, true)
}
