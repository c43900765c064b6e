package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gestao_laser/internal/config"
	"gestao_laser/internal/models"
	"gestao_laser/internal/security"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler manages login and logout.
type AuthHandler struct {
	db   *gorm.DB
	sess config.SessionConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, sess config.SessionConfig) *AuthHandler {
	return &AuthHandler{db: db, sess: sess}
}

// loginRequest defines the login form fields.
type loginRequest struct {
	Username   string `form:"username"`
	Password   string `form:"password"`
	RememberMe string `form:"rememberMe"`
}

// Login verifies credentials and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBind(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}

	var user models.User
	errFind := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário ou senha incorretos"})
			return
		}
		log.WithError(errFind).Error("login: find user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}

	if !security.CheckPassword(user.Password, body.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário ou senha incorretos"})
		return
	}

	SetSessionCookie(c, h.sess, user.ID, body.RememberMe == "on")
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout deletes the session cookie and redirects to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	ClearSessionCookie(c, h.sess)
	c.Redirect(http.StatusSeeOther, settings.LoginPath)
}
