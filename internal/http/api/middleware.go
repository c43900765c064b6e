package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gestao_laser/internal/config"
	"gestao_laser/internal/http/api/handlers"
	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// logoutPath is intercepted by the gate before any other check.
const logoutPath = "/logout"

// SessionMiddleware is the access gate that runs before every handler.
//
// Order matters: logout first, then anonymous handling, then token
// resolution, then role narrowing. A cookie that matches no user row is
// treated as a logout, not as an error.
func SessionMiddleware(db *gorm.DB, sess config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path == logoutPath {
			handlers.ClearSessionCookie(c, sess)
			c.Redirect(http.StatusSeeOther, settings.LoginPath)
			c.Abort()
			return
		}

		token, errCookie := c.Cookie(settings.SessionCookieName)
		if errCookie != nil || strings.TrimSpace(token) == "" {
			handlers.SetCurrentUser(c, nil)
			if !isPublicPath(path) {
				c.Redirect(http.StatusSeeOther, settings.LoginPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		var user handlers.SessionUser
		errFind := db.WithContext(c.Request.Context()).
			Model(&models.User{}).
			Select("id", "username", "role", "cliente_id").
			Where("id = ?", token).
			First(&user).Error
		if errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				handlers.ClearSessionCookie(c, sess)
				c.Redirect(http.StatusSeeOther, settings.LoginPath)
				c.Abort()
				return
			}
			log.WithError(errFind).Error("session: resolve user failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
			return
		}

		handlers.SetCurrentUser(c, &user)

		if user.Role == models.RoleCliente && !isPublicPath(path) && !clienteAllowed(path) {
			c.Redirect(http.StatusSeeOther, settings.ClienteHomePath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuth aborts anonymous requests with a redirect to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if handlers.CurrentUser(c) == nil {
			c.Redirect(http.StatusSeeOther, settings.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles narrows a route group to the given roles. Under-privileged
// users are sent to their default landing route.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := handlers.CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusSeeOther, settings.LoginPath)
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		target := "/"
		if user.Role == models.RoleCliente {
			target = settings.ClienteHomePath
		}
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
	}
}

// RequestLogger logs one line per handled request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}

// isPublicPath reports whether the path is reachable without a session.
func isPublicPath(path string) bool {
	for _, public := range settings.PublicPaths {
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

// clienteAllowed reports whether a cliente account may visit the path.
func clienteAllowed(path string) bool {
	for _, prefix := range settings.ClienteAllowedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
