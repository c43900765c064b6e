package db

import (
	"path/filepath"
	"testing"
	"time"

	"gestao_laser/internal/models"
	"gestao_laser/internal/security"
	"gestao_laser/internal/settings"
)

func TestMigrate_SeedsAdmin(t *testing.T) {
	conn, err := Open("file:" + filepath.Join(t.TempDir(), "gestao-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	var admin models.User
	if errFind := conn.Where("username = ?", settings.DefaultAdminUsername).First(&admin).Error; errFind != nil {
		t.Fatalf("find seeded admin: %v", errFind)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("expected role %q, got %q", models.RoleAdmin, admin.Role)
	}
	if !security.CheckPassword(admin.Password, settings.DefaultAdminPassword) {
		t.Fatalf("seeded admin password does not verify")
	}

	// Running migrations again must not duplicate or reset the admin.
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("second migrate: %v", errMigrate)
	}
	var count int64
	if errCount := conn.Model(&models.User{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count users: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected 1 user after re-migrate, got %d", count)
	}
}

func TestMigrate_UniqueOrderPerBudget(t *testing.T) {
	conn, err := Open("file:" + filepath.Join(t.TempDir(), "gestao-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	orcamento := models.Orcamento{NomeCliente: "Acme", ValorFinal: 100}
	if errCreate := conn.Create(&orcamento).Error; errCreate != nil {
		t.Fatalf("create orcamento: %v", errCreate)
	}

	entrega := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	first := models.Pedido{OrcamentoID: &orcamento.ID, Cliente: "Acme", Valor: 100, DataEntrega: entrega}
	if errCreate := conn.Create(&first).Error; errCreate != nil {
		t.Fatalf("create first pedido: %v", errCreate)
	}

	second := models.Pedido{OrcamentoID: &orcamento.ID, Cliente: "Acme", Valor: 100, DataEntrega: entrega}
	if errCreate := conn.Create(&second).Error; errCreate == nil {
		t.Fatalf("expected unique index to reject a second pedido for the same orcamento")
	}

	// Manual orders carry no budget link; multiple NULLs must coexist.
	for i := 0; i < 2; i++ {
		manual := models.Pedido{Cliente: "Balcão", Valor: 10, DataEntrega: entrega}
		if errCreate := conn.Create(&manual).Error; errCreate != nil {
			t.Fatalf("create manual pedido %d: %v", i, errCreate)
		}
	}
}
