package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gestao_laser/internal/config"
	"gestao_laser/internal/db"
	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
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
	RegisterRoutes(engine, conn, config.SessionConfig{})
	return conn, engine
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: settings.SessionCookieName, Value: value}
}

func doGet(t *testing.T, engine *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGate_AnonymousRedirectsToLogin(t *testing.T) {
	_, engine := newTestRouter(t)

	for _, path := range []string{"/", "/clientes", "/orcamentos/salvos", "/usuarios"} {
		w := doGet(t, engine, path, nil)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != settings.LoginPath {
			t.Fatalf("%s: expected redirect to %s, got %s", path, settings.LoginPath, loc)
		}
	}
}

func TestGate_PublicPathsAllowAnonymous(t *testing.T) {
	_, engine := newTestRouter(t)

	for _, path := range []string{"/healthz", "/metrics"} {
		w := doGet(t, engine, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestGate_StaleCookieClearedAndRedirected(t *testing.T) {
	_, engine := newTestRouter(t)

	w := doGet(t, engine, "/clientes", sessionCookie(uuid.NewString()))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != settings.LoginPath {
		t.Fatalf("expected redirect to %s, got %s", settings.LoginPath, loc)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == settings.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be cleared")
	}
}

func TestGate_ValidCookieReachesHandler(t *testing.T) {
	conn, engine := newTestRouter(t)

	var admin models.User
	if errFind := conn.Where("username = ?", settings.DefaultAdminUsername).First(&admin).Error; errFind != nil {
		t.Fatalf("find admin: %v", errFind)
	}

	w := doGet(t, engine, "/clientes", sessionCookie(admin.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGate_ClienteNarrowedToAllowList(t *testing.T) {
	conn, engine := newTestRouter(t)

	cliente := models.Cliente{Nome: "Acme", Telefone: "11 99999-0000", Email: "acme@example.com", Ativo: true}
	if errCreate := conn.Create(&cliente).Error; errCreate != nil {
		t.Fatalf("create cliente: %v", errCreate)
	}
	user := models.User{Username: "acme", Password: "x", Role: models.RoleCliente, ClienteID: &cliente.ID}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}

	w := doGet(t, engine, "/clientes", sessionCookie(user.ID))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != settings.ClienteHomePath {
		t.Fatalf("expected redirect to %s, got %s", settings.ClienteHomePath, loc)
	}

	for _, path := range []string{"/pedidos", "/orcamentos/salvos"} {
		w := doGet(t, engine, path, sessionCookie(user.ID))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 for allow-listed path, got %d", path, w.Code)
		}
	}
}

func TestGate_LogoutPathClearsCookie(t *testing.T) {
	conn, engine := newTestRouter(t)

	var admin models.User
	if errFind := conn.Where("username = ?", settings.DefaultAdminUsername).First(&admin).Error; errFind != nil {
		t.Fatalf("find admin: %v", errFind)
	}

	w := doGet(t, engine, "/logout", sessionCookie(admin.ID))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != settings.LoginPath {
		t.Fatalf("expected redirect to %s, got %s", settings.LoginPath, loc)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == settings.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be cleared on logout")
	}
}

func TestRequireRoles_NonAdminRedirected(t *testing.T) {
	conn, engine := newTestRouter(t)

	user := models.User{Username: "operador", Password: "x", Role: "operador"}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}

	w := doGet(t, engine, "/usuarios", sessionCookie(user.ID))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}
}
