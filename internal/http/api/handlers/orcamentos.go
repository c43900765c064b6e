package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gestao_laser/internal/audit"
	"gestao_laser/internal/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// deliveryDateLayout is the form wire format for delivery dates.
const deliveryDateLayout = "2006-01-02"

// errAlreadyApproved aborts the approval transaction when another request
// approved the budget first.
var errAlreadyApproved = errors.New("orcamento already approved")

// OrcamentoHandler manages budgets, including the approval workflow that
// promotes a budget into a production order.
type OrcamentoHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewOrcamentoHandler constructs an OrcamentoHandler.
func NewOrcamentoHandler(db *gorm.DB, recorder *audit.Recorder) *OrcamentoHandler {
	return &OrcamentoHandler{db: db, audit: recorder}
}

// LoadCriar returns the catalogs needed by the budget builder: active
// machines, materials, and customers.
func (h *OrcamentoHandler) LoadCriar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var maquinas []models.Maquina
	if err := h.db.WithContext(ctx).Where("ativa = ?", true).Order("nome ASC").Find(&maquinas).Error; err != nil {
		h.fail(c, err, "Erro ao carregar recursos")
		return
	}
	var materiais []models.Material
	if err := h.db.WithContext(ctx).Where("ativo = ?", true).Order("nome ASC").Find(&materiais).Error; err != nil {
		h.fail(c, err, "Erro ao carregar recursos")
		return
	}
	var clientes []models.Cliente
	if err := h.db.WithContext(ctx).
		Select("id", "nome", "telefone", "email").
		Where("ativo = ?", true).
		Order("nome ASC").
		Find(&clientes).Error; err != nil {
		h.fail(c, err, "Erro ao carregar clientes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"maquinas":  maquinas,
		"materiais": materiais,
		"clientes":  clientes,
	})
}

// LoadSalvos lists saved budgets. Cliente accounts only see their own
// approved budgets.
func (h *OrcamentoHandler) LoadSalvos(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	q := h.db.WithContext(ctx).Preload("Cliente").Order("created_at DESC")
	if user.IsCliente() && user.ClienteID != nil {
		q = q.Where("cliente_id = ? AND status = ?", *user.ClienteID, models.OrcamentoStatusAprovado)
	}

	var orcamentos []models.Orcamento
	if err := q.Find(&orcamentos).Error; err != nil {
		h.fail(c, err, "Erro ao carregar orçamentos")
		return
	}

	var clientes []models.Cliente
	if err := h.db.WithContext(ctx).
		Select("id", "nome", "telefone", "email").
		Where("ativo = ?", true).
		Order("nome ASC").
		Find(&clientes).Error; err != nil {
		h.fail(c, err, "Erro ao carregar clientes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"isCliente":  user.IsCliente(),
		"orcamentos": orcamentos,
		"clientes":   clientes,
	})
}

// criarOrcamentoForm defines the budget creation form fields.
type criarOrcamentoForm struct {
	ClienteID        string `form:"clienteId"`
	Descricao        string `form:"descricao"`
	ItensDetalhados  string `form:"itensDetalhados"`
	Subtotal         string `form:"subtotal"`
	MargemLucro      string `form:"margemLucro"`
	GastosAdicionais string `form:"gastosAdicionais"`
	ValorFinal       string `form:"valorFinal"`
}

// Criar saves a new budget and redirects to the saved-budgets page.
func (h *OrcamentoHandler) Criar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form criarOrcamentoForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha os campos obrigatórios"})
		return
	}
	clienteID := strings.TrimSpace(form.ClienteID)
	valorFinal, errValor := strconv.ParseFloat(strings.TrimSpace(form.ValorFinal), 64)
	if clienteID == "" || errValor != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha os campos obrigatórios"})
		return
	}

	orcamento := models.Orcamento{
		ClienteID:        &clienteID,
		Descricao:        strings.TrimSpace(form.Descricao),
		ItensDetalhados:  form.ItensDetalhados,
		Subtotal:         parseFloatOr(form.Subtotal, 0),
		MargemLucro:      parseFloatOr(form.MargemLucro, models.DefaultMargemLucro),
		GastosAdicionais: parseFloatOr(form.GastosAdicionais, 0),
		ValorFinal:       valorFinal,
		Status:           models.OrcamentoStatusPendente,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&orcamento).Error; errCreate != nil {
		h.fail(c, errCreate, "Erro ao salvar orçamento")
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "orcamento", orcamento.ID, map[string]any{"valorFinal": valorFinal})
	c.Redirect(http.StatusSeeOther, "/orcamentos/salvos")
}

// aprovarForm defines the approval form fields.
type aprovarForm struct {
	ID          string `form:"id"`
	DataEntrega string `form:"dataEntrega"`
}

// Aprovar approves a budget and creates the matching production order.
// The status write and the order insert run in one transaction, and a
// budget already marked Aprovado cannot be approved again.
func (h *OrcamentoHandler) Aprovar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form aprovarForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	id := strings.TrimSpace(form.ID)
	if id == "" || strings.TrimSpace(form.DataEntrega) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	dataEntrega, errDate := time.Parse(deliveryDateLayout, strings.TrimSpace(form.DataEntrega))
	if errDate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	ctx := c.Request.Context()

	var orcamento models.Orcamento
	errFind := h.db.WithContext(ctx).Preload("Cliente").Where("id = ?", id).First(&orcamento).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Orçamento não encontrado"})
			return
		}
		h.fail(c, errFind, "Erro ao aprovar orçamento")
		return
	}

	// An order needs an attributable customer: the linked record wins,
	// the free-text name is the fallback.
	nomeCliente := orcamento.NomeCliente
	if orcamento.Cliente != nil {
		nomeCliente = orcamento.Cliente.Nome
	}
	if strings.TrimSpace(nomeCliente) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vincule um cliente ao orçamento antes de aprovar"})
		return
	}

	if orcamento.Status == models.OrcamentoStatusAprovado {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Orçamento já aprovado"})
		return
	}

	var pedido models.Pedido
	errTx := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Orcamento{}).
			Where("id = ? AND status <> ?", id, models.OrcamentoStatusAprovado).
			Update("status", models.OrcamentoStatusAprovado)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyApproved
		}

		pedido = models.Pedido{
			OrcamentoID: &orcamento.ID,
			Cliente:     nomeCliente,
			Valor:       orcamento.ValorFinal,
			DataEntrega: dataEntrega,
			Status:      models.PedidoStatusPendente,
		}
		return tx.Create(&pedido).Error
	})
	if errTx != nil {
		if errors.Is(errTx, errAlreadyApproved) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Orçamento já aprovado"})
			return
		}
		h.fail(c, errTx, "Erro ao aprovar orçamento")
		return
	}

	h.audit.Record(ctx, user.Username, "aprovar", "orcamento", id, map[string]any{
		"pedidoId": pedido.ID,
		"cliente":  nomeCliente,
		"valor":    orcamento.ValorFinal,
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Recusar rejects a budget. No side effects beyond the status write.
func (h *OrcamentoHandler) Recusar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Orcamento{}).
		Where("id = ?", id).
		Update("status", models.OrcamentoStatusRecusado)
	if res.Error != nil {
		h.fail(c, res.Error, "Erro ao recusar orçamento")
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Orçamento não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "recusar", "orcamento", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// vincularForm defines the link-customer form fields.
type vincularForm struct {
	ID        string `form:"id"`
	ClienteID string `form:"clienteId"`
}

// VincularCliente links (or unlinks) a customer record to a budget and
// clears the free-text name.
func (h *OrcamentoHandler) VincularCliente(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form vincularForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}
	id := strings.TrimSpace(form.ID)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	updates := map[string]any{"nome_cliente": ""}
	if clienteID := strings.TrimSpace(form.ClienteID); clienteID != "" {
		updates["cliente_id"] = clienteID
	} else {
		updates["cliente_id"] = nil
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Orcamento{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		h.fail(c, res.Error, "Erro ao vincular cliente")
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Orçamento não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "vincular-cliente", "orcamento", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Excluir removes a budget.
func (h *OrcamentoHandler) Excluir(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Orcamento{}, "id = ?", id).Error; errDelete != nil {
		h.fail(c, errDelete, "Erro ao excluir orçamento")
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "orcamento", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OrcamentoHandler) fail(c *gin.Context, err error, msg string) {
	log.WithError(err).Error("orcamentos: operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// parseFloatOr parses a form number, returning the fallback when empty or
// malformed.
func parseFloatOr(raw string, fallback float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
