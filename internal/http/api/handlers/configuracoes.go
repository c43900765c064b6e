package handlers

import (
	"net/http"
	"strings"

	"gestao_laser/internal/audit"
	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigHandler manages the company-config singleton.
type ConfigHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewConfigHandler constructs a ConfigHandler.
func NewConfigHandler(db *gorm.DB, recorder *audit.Recorder) *ConfigHandler {
	return &ConfigHandler{db: db, audit: recorder}
}

// Load returns the company config, creating the singleton row on first
// read.
func (h *ConfigHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	config := models.ConfigEmpresa{ID: settings.ConfigEmpresaID}
	errUpsert := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&config).Error
	if errUpsert != nil {
		h.fail(c, errUpsert)
		return
	}
	if errFind := h.db.WithContext(c.Request.Context()).First(&config, "id = ?", settings.ConfigEmpresaID).Error; errFind != nil {
		h.fail(c, errFind)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "config": config})
}

// configForm defines the settings form fields.
type configForm struct {
	Nome     string `form:"nome"`
	Tagline  string `form:"tagline"`
	Telefone string `form:"telefone"`
	Email    string `form:"email"`
	Cnpj     string `form:"cnpj"`
}

// Salvar upserts the company config.
func (h *ConfigHandler) Salvar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form configForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da empresa é obrigatório"})
		return
	}
	if strings.TrimSpace(form.Nome) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da empresa é obrigatório"})
		return
	}

	config := models.ConfigEmpresa{
		ID:       settings.ConfigEmpresaID,
		Nome:     strings.TrimSpace(form.Nome),
		Tagline:  strings.TrimSpace(form.Tagline),
		Telefone: strings.TrimSpace(form.Telefone),
		Email:    strings.TrimSpace(form.Email),
		Cnpj:     strings.TrimSpace(form.Cnpj),
	}
	errUpsert := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nome", "tagline", "telefone", "email", "cnpj", "updated_at"}),
		}).
		Create(&config).Error
	if errUpsert != nil {
		h.fail(c, errUpsert)
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "salvar", "config_empresa", config.ID, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ConfigHandler) fail(c *gin.Context, err error) {
	log.WithError(err).Error("configuracoes: operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar configurações"})
}
