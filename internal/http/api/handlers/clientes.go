package handlers

import (
	"net/http"
	"strings"

	"gestao_laser/internal/audit"
	dbutil "gestao_laser/internal/db"
	"gestao_laser/internal/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClienteHandler manages the customer registry.
type ClienteHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewClienteHandler constructs a ClienteHandler.
func NewClienteHandler(db *gorm.DB, recorder *audit.Recorder) *ClienteHandler {
	return &ClienteHandler{db: db, audit: recorder}
}

// Load lists customers, newest first, optionally filtered by name.
func (h *ClienteHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Cliente{})
	if busca := strings.TrimSpace(c.Query("busca")); busca != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+busca+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "nome"), pattern)
	}

	var clientes []models.Cliente
	if errFind := q.Order("created_at DESC").Find(&clientes).Error; errFind != nil {
		log.WithError(errFind).Error("clientes: list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar clientes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "clientes": clientes})
}

// clienteForm defines the create/edit form fields.
type clienteForm struct {
	ID          string `form:"id"`
	Nome        string `form:"nome"`
	CpfCnpj     string `form:"cpfCnpj"`
	Telefone    string `form:"telefone"`
	Email       string `form:"email"`
	Endereco    string `form:"endereco"`
	Observacoes string `form:"observacoes"`
	Ativo       string `form:"ativo"`
}

// validate checks the required fields, including the id when editing.
func (f *clienteForm) validate(requireID bool) string {
	if requireID && strings.TrimSpace(f.ID) == "" {
		return "Dados inválidos"
	}
	if strings.TrimSpace(f.Nome) == "" || strings.TrimSpace(f.Telefone) == "" || strings.TrimSpace(f.Email) == "" {
		return "Preencha todos os campos obrigatórios"
	}
	return ""
}

// Criar registers a new customer.
func (h *ClienteHandler) Criar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form clienteForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if msg := form.validate(false); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	cliente := models.Cliente{
		Nome:        strings.TrimSpace(form.Nome),
		CpfCnpj:     strings.TrimSpace(form.CpfCnpj),
		Telefone:    strings.TrimSpace(form.Telefone),
		Email:       strings.TrimSpace(form.Email),
		Endereco:    strings.TrimSpace(form.Endereco),
		Observacoes: strings.TrimSpace(form.Observacoes),
		Ativo:       form.Ativo == "on",
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&cliente).Error; errCreate != nil {
		log.WithError(errCreate).Error("clientes: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao cadastrar cliente"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "cliente", cliente.ID, map[string]any{"nome": cliente.Nome})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Editar updates an existing customer.
func (h *ClienteHandler) Editar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form clienteForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if msg := form.validate(true); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	updates := map[string]any{
		"nome":        strings.TrimSpace(form.Nome),
		"cpf_cnpj":    strings.TrimSpace(form.CpfCnpj),
		"telefone":    strings.TrimSpace(form.Telefone),
		"email":       strings.TrimSpace(form.Email),
		"endereco":    strings.TrimSpace(form.Endereco),
		"observacoes": strings.TrimSpace(form.Observacoes),
		"ativo":       form.Ativo == "on",
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Cliente{}).Where("id = ?", form.ID).Updates(updates)
	if res.Error != nil {
		log.WithError(res.Error).Error("clientes: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar cliente"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "editar", "cliente", form.ID, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Excluir removes a customer. Customers with linked budgets are protected
// by the foreign key; the integrity error surfaces as a domain message.
func (h *ClienteHandler) Excluir(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Cliente{}, "id = ?", id).Error; errDelete != nil {
		log.WithError(errDelete).Warn("clientes: delete blocked")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Este cliente possui orçamentos vinculados e não pode ser excluído"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "cliente", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
