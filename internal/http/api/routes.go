package api

import (
	"gestao_laser/internal/audit"
	"gestao_laser/internal/config"
	"gestao_laser/internal/http/api/handlers"
	"gestao_laser/internal/metrics"
	"gestao_laser/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires middleware, page loads, and form actions.
//
// Every page route pairs a GET load with its POST actions. The session
// gate runs on everything; RequireAuth guards the authenticated groups and
// RequireRoles narrows the user-management routes to administrators.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, sess config.SessionConfig) {
	if r == nil || conn == nil {
		return
	}

	recorder := audit.NewRecorder(conn)

	r.Use(RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(SessionMiddleware(conn, sess))

	healthHandler := handlers.NewHealthHandler(conn)
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authHandler := handlers.NewAuthHandler(conn, sess)
	r.POST("/login", authHandler.Login)
	r.POST("/login/logout", authHandler.Logout)

	authed := r.Group("", RequireAuth())

	dashboardHandler := handlers.NewDashboardHandler(conn)
	authed.GET("/", dashboardHandler.Load)

	clienteHandler := handlers.NewClienteHandler(conn, recorder)
	authed.GET("/clientes", clienteHandler.Load)
	authed.POST("/clientes/criar", clienteHandler.Criar)
	authed.POST("/clientes/editar", clienteHandler.Editar)
	authed.POST("/clientes/excluir", clienteHandler.Excluir)

	configHandler := handlers.NewConfigHandler(conn, recorder)
	authed.GET("/configuracoes", configHandler.Load)
	authed.POST("/configuracoes/salvar", configHandler.Salvar)

	orcamentoHandler := handlers.NewOrcamentoHandler(conn, recorder)
	authed.GET("/orcamentos/criar", orcamentoHandler.LoadCriar)
	authed.POST("/orcamentos/criar", orcamentoHandler.Criar)
	authed.GET("/orcamentos/salvos", orcamentoHandler.LoadSalvos)
	authed.POST("/orcamentos/salvos/aprovar", orcamentoHandler.Aprovar)
	authed.POST("/orcamentos/salvos/recusar", orcamentoHandler.Recusar)
	authed.POST("/orcamentos/salvos/vincular-cliente", orcamentoHandler.VincularCliente)
	authed.POST("/orcamentos/salvos/excluir", orcamentoHandler.Excluir)

	pedidoHandler := handlers.NewPedidoHandler(conn, recorder)
	authed.GET("/pedidos", pedidoHandler.Load)
	authed.POST("/pedidos/criar", pedidoHandler.Criar)
	authed.POST("/pedidos/atualizar-status", pedidoHandler.AtualizarStatus)
	authed.POST("/pedidos/excluir", pedidoHandler.Excluir)

	recursoHandler := handlers.NewRecursoHandler(conn, recorder)
	authed.GET("/recursos", recursoHandler.Load)
	authed.POST("/recursos/maquinas/criar", recursoHandler.CriarMaquina)
	authed.POST("/recursos/maquinas/editar", recursoHandler.EditarMaquina)
	authed.POST("/recursos/maquinas/excluir", recursoHandler.ExcluirMaquina)
	authed.POST("/recursos/materiais/criar", recursoHandler.CriarMaterial)
	authed.POST("/recursos/materiais/editar", recursoHandler.EditarMaterial)
	authed.POST("/recursos/materiais/excluir", recursoHandler.ExcluirMaterial)

	usuarioHandler := handlers.NewUsuarioHandler(conn, recorder)
	adminOnly := authed.Group("/usuarios", RequireRoles(models.RoleAdmin))
	adminOnly.GET("", usuarioHandler.Load)
	adminOnly.POST("/criar", usuarioHandler.Criar)
	adminOnly.POST("/atualizar-role", usuarioHandler.AtualizarRole)
	adminOnly.POST("/excluir", usuarioHandler.Excluir)
}
