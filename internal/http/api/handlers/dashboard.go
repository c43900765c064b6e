package handlers

import (
	"net/http"
	"time"

	"gestao_laser/internal/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DashboardHandler serves the home page statistics.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Load returns today's budget stats, pending orders, active clients, and
// the five most recent budgets.
func (h *DashboardHandler) Load(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		orcamentosHoje  int64
		valorTotalHoje  float64
		pedidosPendentes int64
		clientesAtivos  int64
	)

	if err := h.db.WithContext(ctx).Model(&models.Orcamento{}).
		Where("created_at >= ?", startOfDay).
		Count(&orcamentosHoje).Error; err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Model(&models.Orcamento{}).
		Where("created_at >= ?", startOfDay).
		Select("COALESCE(SUM(valor_final), 0)").
		Scan(&valorTotalHoje).Error; err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Model(&models.Pedido{}).
		Where("status = ?", models.PedidoStatusPendente).
		Count(&pedidosPendentes).Error; err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Model(&models.Cliente{}).
		Where("ativo = ?", true).
		Count(&clientesAtivos).Error; err != nil {
		h.fail(c, err)
		return
	}

	var recentes []models.Orcamento
	if err := h.db.WithContext(ctx).
		Preload("Cliente").
		Order("created_at DESC").
		Limit(5).
		Find(&recentes).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"stats": gin.H{
			"orcamentosHoje":   orcamentosHoje,
			"valorTotal":       valorTotalHoje,
			"pedidosPendentes": pedidosPendentes,
			"clientesAtivos":   clientesAtivos,
		},
		"orcamentosRecentes": recentes,
	})
}

func (h *DashboardHandler) fail(c *gin.Context, err error) {
	log.WithError(err).Error("dashboard: query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o painel"})
}
