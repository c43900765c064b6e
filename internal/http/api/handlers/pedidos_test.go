package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"gestao_laser/internal/models"
)

func TestCriarPedidoManual(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/pedidos/criar", url.Values{
		"cliente":     {"Balcão"},
		"valor":       {"250.75"},
		"dataEntrega": {"2026-10-01"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var pedido models.Pedido
	if err := env.db.First(&pedido, "cliente = ?", "Balcão").Error; err != nil {
		t.Fatalf("find created pedido: %v", err)
	}
	if pedido.OrcamentoID != nil {
		t.Fatalf("manual order must carry no budget link, got %v", *pedido.OrcamentoID)
	}
	if pedido.Status != models.PedidoStatusPendente {
		t.Fatalf("expected default status %q, got %q", models.PedidoStatusPendente, pedido.Status)
	}
	if pedido.Valor != 250.75 {
		t.Fatalf("expected valor 250.75, got %v", pedido.Valor)
	}
}

func TestCriarPedido_DataInvalida(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/pedidos/criar", url.Values{
		"cliente":     {"Balcão"},
		"valor":       {"100"},
		"dataEntrega": {"01/10/2026"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAtualizarStatusPedido(t *testing.T) {
	env := newTestEnv(t)
	pedido := models.Pedido{
		Cliente:     "Balcão",
		Valor:       100,
		DataEntrega: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.PedidoStatusPendente,
	}
	if err := env.db.Create(&pedido).Error; err != nil {
		t.Fatalf("create pedido: %v", err)
	}

	w := env.post(t, "/pedidos/atualizar-status", url.Values{
		"id":     {pedido.ID},
		"status": {models.PedidoStatusEmProducao},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var atualizado models.Pedido
	if err := env.db.First(&atualizado, "id = ?", pedido.ID).Error; err != nil {
		t.Fatalf("reload pedido: %v", err)
	}
	if atualizado.Status != models.PedidoStatusEmProducao {
		t.Fatalf("expected status %q, got %q", models.PedidoStatusEmProducao, atualizado.Status)
	}
}

func TestAtualizarStatusPedido_NaoEncontrado(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/pedidos/atualizar-status", url.Values{
		"id":     {"inexistente"},
		"status": {models.PedidoStatusConcluido},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListarPedidos_ClienteVeApenasOsSeus(t *testing.T) {
	env := newTestEnv(t)

	acme := env.createCliente(t, "Acme")
	outro := env.createCliente(t, "Outra Oficina")

	orcAcme := env.createOrcamento(t, &acme.ID, "", 100)
	orcOutro := env.createOrcamento(t, &outro.ID, "", 200)

	for _, orc := range []models.Orcamento{orcAcme, orcOutro} {
		if w := env.post(t, "/orcamentos/salvos/aprovar", url.Values{"id": {orc.ID}, "dataEntrega": {"2026-10-01"}}); w.Code != http.StatusOK {
			t.Fatalf("approve %s: expected 200, got %d", orc.ID, w.Code)
		}
	}

	userAcme := models.User{Username: "acme", Password: "x", Role: models.RoleCliente, ClienteID: &acme.ID}
	if err := env.db.Create(&userAcme).Error; err != nil {
		t.Fatalf("create cliente user: %v", err)
	}
	env.cookie.Value = userAcme.ID

	w := env.get(t, "/pedidos")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		IsCliente bool            `json:"isCliente"`
		Pedidos   []models.Pedido `json:"pedidos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.IsCliente {
		t.Fatalf("expected isCliente=true")
	}
	if len(body.Pedidos) != 1 || body.Pedidos[0].Cliente != "Acme" {
		t.Fatalf("expected only Acme's order, got %+v", body.Pedidos)
	}
}

func TestExcluirPedido(t *testing.T) {
	env := newTestEnv(t)
	pedido := models.Pedido{
		Cliente:     "Balcão",
		Valor:       100,
		DataEntrega: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.PedidoStatusPendente,
	}
	if err := env.db.Create(&pedido).Error; err != nil {
		t.Fatalf("create pedido: %v", err)
	}

	w := env.post(t, "/pedidos/excluir", url.Values{"id": {pedido.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := env.db.Model(&models.Pedido{}).Where("id = ?", pedido.ID).Count(&count).Error; err != nil {
		t.Fatalf("count pedidos: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected pedido row to be removed")
	}
}
