package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"gestao_laser/internal/models"
)

func TestDashboard_Estatisticas(t *testing.T) {
	env := newTestEnv(t)

	cliente := env.createCliente(t, "Acme")
	env.createOrcamento(t, &cliente.ID, "", 150)
	env.createOrcamento(t, &cliente.ID, "", 250)

	pedido := models.Pedido{
		Cliente:     "Acme",
		Valor:       150,
		DataEntrega: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.PedidoStatusPendente,
	}
	if err := env.db.Create(&pedido).Error; err != nil {
		t.Fatalf("create pedido: %v", err)
	}

	if w := env.post(t, "/pedidos/atualizar-status", url.Values{"id": {pedido.ID}, "status": {models.PedidoStatusConcluido}}); w.Code != http.StatusOK {
		t.Fatalf("update status: expected 200, got %d", w.Code)
	}

	w := env.get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Stats struct {
			OrcamentosHoje   int64   `json:"orcamentosHoje"`
			ValorTotal       float64 `json:"valorTotal"`
			PedidosPendentes int64   `json:"pedidosPendentes"`
			ClientesAtivos   int64   `json:"clientesAtivos"`
		} `json:"stats"`
		OrcamentosRecentes []models.Orcamento `json:"orcamentosRecentes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body.Stats.OrcamentosHoje != 2 {
		t.Fatalf("expected 2 budgets today, got %d", body.Stats.OrcamentosHoje)
	}
	if body.Stats.ValorTotal != 400 {
		t.Fatalf("expected total 400, got %v", body.Stats.ValorTotal)
	}
	// The only order was moved to Concluido above.
	if body.Stats.PedidosPendentes != 0 {
		t.Fatalf("expected 0 pending orders, got %d", body.Stats.PedidosPendentes)
	}
	if body.Stats.ClientesAtivos != 1 {
		t.Fatalf("expected 1 active client, got %d", body.Stats.ClientesAtivos)
	}
	if len(body.OrcamentosRecentes) != 2 {
		t.Fatalf("expected 2 recent budgets, got %d", len(body.OrcamentosRecentes))
	}
}
