package handlers

import (
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

// PedidoHandler manages production orders.
type PedidoHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewPedidoHandler constructs a PedidoHandler.
func NewPedidoHandler(db *gorm.DB, recorder *audit.Recorder) *PedidoHandler {
	return &PedidoHandler{db: db, audit: recorder}
}

// Load lists orders, newest first. Cliente accounts only see orders whose
// budget belongs to them.
func (h *PedidoHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Preload("Orcamento", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "descricao", "itens_detalhados")
		}).
		Order("created_at DESC")
	if user.IsCliente() && user.ClienteID != nil {
		q = q.Where("orcamento_id IN (?)",
			h.db.Model(&models.Orcamento{}).Select("id").Where("cliente_id = ?", *user.ClienteID))
	}

	var pedidos []models.Pedido
	if errFind := q.Find(&pedidos).Error; errFind != nil {
		log.WithError(errFind).Error("pedidos: list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar pedidos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"isCliente": user.IsCliente(),
		"pedidos":   pedidos,
	})
}

// criarPedidoForm defines the manual order creation form fields.
type criarPedidoForm struct {
	Cliente     string `form:"cliente"`
	Valor       string `form:"valor"`
	DataEntrega string `form:"dataEntrega"`
	Status      string `form:"status"`
}

// Criar registers a manual order with no budget link.
func (h *PedidoHandler) Criar(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	var form criarPedidoForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}
	cliente := strings.TrimSpace(form.Cliente)
	valor, errValor := strconv.ParseFloat(strings.TrimSpace(form.Valor), 64)
	dataEntrega, errDate := time.Parse(deliveryDateLayout, strings.TrimSpace(form.DataEntrega))
	if cliente == "" || errValor != nil || errDate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}

	status := strings.TrimSpace(form.Status)
	if status == "" {
		status = models.PedidoStatusPendente
	}

	pedido := models.Pedido{
		Cliente:     cliente,
		Valor:       valor,
		DataEntrega: dataEntrega,
		Status:      status,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&pedido).Error; errCreate != nil {
		log.WithError(errCreate).Error("pedidos: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pedido"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "criar", "pedido", pedido.ID, map[string]any{"cliente": cliente, "valor": valor})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AtualizarStatus moves an order through its production lifecycle.
func (h *PedidoHandler) AtualizarStatus(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	status := strings.TrimSpace(c.PostForm("status"))
	if id == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Pedido{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		log.WithError(res.Error).Error("pedidos: update status failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar pedido"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "atualizar-status", "pedido", id, map[string]any{"status": status})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Excluir removes an order.
func (h *PedidoHandler) Excluir(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Pedido{}, "id = ?", id).Error; errDelete != nil {
		log.WithError(errDelete).Error("pedidos: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir pedido"})
		return
	}

	h.audit.Record(c.Request.Context(), user.Username, "excluir", "pedido", id, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
