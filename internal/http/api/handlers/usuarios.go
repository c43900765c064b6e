package handlers

import (
	"net/http"
	"strings"

	"gestao_laser/internal/audit"
	"gestao_laser/internal/models"
	"gestao_laser/internal/security"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UsuarioHandler manages login accounts. All routes are admin-only.
type UsuarioHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewUsuarioHandler constructs a UsuarioHandler.
func NewUsuarioHandler(db *gorm.DB, recorder *audit.Recorder) *UsuarioHandler {
	return &UsuarioHandler{db: db, audit: recorder}
}

// usuarioRow is the user shape returned by Load. The password hash never
// leaves the database.
type usuarioRow struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	ClienteID *string `json:"clienteId"`
}

// Load lists accounts and the active customers available for linking.
func (h *UsuarioHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var usuarios []usuarioRow
	if err := h.db.WithContext(ctx).Model(&models.User{}).
		Select("id", "username", "role", "cliente_id").
		Order("created_at ASC").
		Find(&usuarios).Error; err != nil {
		h.fail(c, err)
		return
	}

	var clientes []models.Cliente
	if err := h.db.WithContext(ctx).
		Select("id", "nome").
		Where("ativo = ?", true).
		Order("nome ASC").
		Find(&clientes).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "usuarios": usuarios, "clientes": clientes})
}

// criarUsuarioForm defines the account creation form fields.
type criarUsuarioForm struct {
	Username  string `form:"username"`
	Password  string `form:"password"`
	Role      string `form:"role"`
	ClienteID string `form:"clienteId"`
}

// Criar registers an account, hashing the password before storage.
func (h *UsuarioHandler) Criar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form criarUsuarioForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha usuário e senha"})
		return
	}
	username := strings.TrimSpace(form.Username)
	if username == "" || form.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha usuário e senha"})
		return
	}
	if len(form.Password) < settings.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Senha deve ter no mínimo 4 caracteres"})
		return
	}

	role := strings.TrimSpace(form.Role)
	if role == "" {
		role = models.RoleAdmin
	}

	hash, errHash := security.HashPassword(form.Password)
	if errHash != nil {
		h.fail(c, errHash)
		return
	}

	novo := models.User{
		Username:  username,
		Password:  hash,
		Role:      role,
		ClienteID: optionalID(form.ClienteID),
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&novo).Error; errCreate != nil {
		// The unique index on username is the only constraint this insert
		// can trip in practice.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome de usuário já existe"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "usuario", novo.ID, map[string]any{"username": username, "role": role})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// atualizarRoleForm defines the role-update form fields.
type atualizarRoleForm struct {
	ID        string `form:"id"`
	Role      string `form:"role"`
	ClienteID string `form:"clienteId"`
}

// AtualizarRole changes an account's role and customer link.
func (h *UsuarioHandler) AtualizarRole(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form atualizarRoleForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	id := strings.TrimSpace(form.ID)
	role := strings.TrimSpace(form.Role)
	if id == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	updates := map[string]any{"role": role}
	if clienteID := optionalID(form.ClienteID); clienteID != nil {
		updates["cliente_id"] = *clienteID
	} else {
		updates["cliente_id"] = nil
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "atualizar-role", "usuario", id, map[string]any{"role": role})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Excluir removes an account. Deleting the account behind the current
// session is blocked.
func (h *UsuarioHandler) Excluir(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}
	if id == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Você não pode excluir sua própria conta"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "usuario", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UsuarioHandler) fail(c *gin.Context, err error) {
	log.WithError(err).Error("usuarios: operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
}

// optionalID normalizes an optional form id into a nullable value.
func optionalID(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
