package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"gestao_laser/internal/config"
	"gestao_laser/internal/db"
	"gestao_laser/internal/http/api"
	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// testEnv bundles a migrated database, a routed engine, and the seeded
// admin's session cookie.
type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
	cookie *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "gestao-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	engine := gin.New()
	api.RegisterRoutes(engine, conn, config.SessionConfig{})

	var admin models.User
	if errFind := conn.Where("username = ?", settings.DefaultAdminUsername).First(&admin).Error; errFind != nil {
		t.Fatalf("find seeded admin: %v", errFind)
	}

	return &testEnv{
		db:     conn,
		engine: engine,
		cookie: &http.Cookie{Name: settings.SessionCookieName, Value: admin.ID},
	}
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// createCliente inserts an active customer directly, bypassing the form.
func (e *testEnv) createCliente(t *testing.T, nome string) models.Cliente {
	t.Helper()
	cliente := models.Cliente{Nome: nome, Telefone: "11 99999-0000", Email: nome + "@example.com", Ativo: true}
	if err := e.db.Create(&cliente).Error; err != nil {
		t.Fatalf("create cliente: %v", err)
	}
	return cliente
}

// createOrcamento inserts a pending budget directly.
func (e *testEnv) createOrcamento(t *testing.T, clienteID *string, nomeCliente string, valorFinal float64) models.Orcamento {
	t.Helper()
	orcamento := models.Orcamento{
		ClienteID:   clienteID,
		NomeCliente: nomeCliente,
		Descricao:   "Corte em acrílico",
		ValorFinal:  valorFinal,
		Status:      models.OrcamentoStatusPendente,
	}
	if err := e.db.Create(&orcamento).Error; err != nil {
		t.Fatalf("create orcamento: %v", err)
	}
	return orcamento
}
