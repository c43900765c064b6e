package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"gestao_laser/internal/audit"
	"gestao_laser/internal/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// m2ToMm2Divisor converts a price per square meter into a price per square
// millimeter (1 m² = 1,000,000 mm²).
const m2ToMm2Divisor = 1_000_000

// RecursoHandler manages the machine and material catalogs.
type RecursoHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewRecursoHandler constructs a RecursoHandler.
func NewRecursoHandler(db *gorm.DB, recorder *audit.Recorder) *RecursoHandler {
	return &RecursoHandler{db: db, audit: recorder}
}

// Load lists machines and materials, newest first.
func (h *RecursoHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var maquinas []models.Maquina
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&maquinas).Error; err != nil {
		h.fail(c, err)
		return
	}
	var materiais []models.Material
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&materiais).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"maquinas":  maquinas,
		"materiais": materiais,
	})
}

// maquinaForm defines the machine create/edit form fields.
type maquinaForm struct {
	ID        string `form:"id"`
	Nome      string `form:"nome"`
	CustoHora string `form:"custoHora"`
	Ativa     string `form:"ativa"`
}

// CriarMaquina registers a machine.
func (h *RecursoHandler) CriarMaquina(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form maquinaForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}
	nome := strings.TrimSpace(form.Nome)
	custoHora, errCusto := strconv.ParseFloat(strings.TrimSpace(form.CustoHora), 64)
	if nome == "" || errCusto != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}

	maquina := models.Maquina{Nome: nome, CustoHora: custoHora, Ativa: form.Ativa == "on"}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&maquina).Error; errCreate != nil {
		h.fail(c, errCreate)
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "maquina", maquina.ID, map[string]any{"nome": nome})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// EditarMaquina updates a machine.
func (h *RecursoHandler) EditarMaquina(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form maquinaForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	id := strings.TrimSpace(form.ID)
	nome := strings.TrimSpace(form.Nome)
	custoHora, errCusto := strconv.ParseFloat(strings.TrimSpace(form.CustoHora), 64)
	if id == "" || nome == "" || errCusto != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Maquina{}).Where("id = ?", id).Updates(map[string]any{
		"nome":       nome,
		"custo_hora": custoHora,
		"ativa":      form.Ativa == "on",
	})
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Máquina não encontrada"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "editar", "maquina", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExcluirMaquina removes a machine.
func (h *RecursoHandler) ExcluirMaquina(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}
	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Maquina{}, "id = ?", id).Error; errDelete != nil {
		h.fail(c, errDelete)
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "maquina", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// materialForm defines the material create/edit form fields. The price is
// entered per m² and stored per mm².
type materialForm struct {
	ID      string `form:"id"`
	Nome    string `form:"nome"`
	PrecoM2 string `form:"precoM2"`
	Ativo   string `form:"ativo"`
}

// CriarMaterial registers a material, converting the entered R$/m² price
// into the stored R$/mm² unit.
func (h *RecursoHandler) CriarMaterial(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form materialForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}
	nome := strings.TrimSpace(form.Nome)
	precoM2, errPreco := strconv.ParseFloat(strings.TrimSpace(form.PrecoM2), 64)
	if nome == "" || errPreco != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}

	material := models.Material{Nome: nome, PrecoMm2: precoM2 / m2ToMm2Divisor, Ativo: form.Ativo == "on"}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&material).Error; errCreate != nil {
		h.fail(c, errCreate)
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "material", material.ID, map[string]any{"nome": nome})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// EditarMaterial updates a material, applying the same unit conversion.
func (h *RecursoHandler) EditarMaterial(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form materialForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	id := strings.TrimSpace(form.ID)
	nome := strings.TrimSpace(form.Nome)
	precoM2, errPreco := strconv.ParseFloat(strings.TrimSpace(form.PrecoM2), 64)
	if id == "" || nome == "" || errPreco != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Material{}).Where("id = ?", id).Updates(map[string]any{
		"nome":      nome,
		"preco_mm2": precoM2 / m2ToMm2Divisor,
		"ativo":     form.Ativo == "on",
	})
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "editar", "material", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExcluirMaterial removes a material.
func (h *RecursoHandler) ExcluirMaterial(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}
	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Material{}, "id = ?", id).Error; errDelete != nil {
		h.fail(c, errDelete)
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "material", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecursoHandler) fail(c *gin.Context, err error) {
	log.WithError(err).Error("recursos: operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar recurso"})
}
