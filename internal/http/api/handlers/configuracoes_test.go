package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"gestao_laser/internal/models"
	"gestao_laser/internal/settings"
)

func TestConfiguracoes_LoadCriaSingleton(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if w := env.get(t, "/configuracoes"); w.Code != http.StatusOK {
			t.Fatalf("load %d: expected 200, got %d: %s", i, w.Code, w.Body.String())
		}
	}

	var count int64
	if err := env.db.Model(&models.ConfigEmpresa{}).Count(&count).Error; err != nil {
		t.Fatalf("count configs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single config row, got %d", count)
	}
}

func TestConfiguracoes_SalvarUpsert(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/configuracoes/salvar", url.Values{
		"nome":     {"Laser & Cia"},
		"tagline":  {"Corte e gravação"},
		"telefone": {"11 95555-4444"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("first save: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Saving again must update the same row, not add another.
	w = env.post(t, "/configuracoes/salvar", url.Values{"nome": {"Laser & Cia Ltda"}})
	if w.Code != http.StatusOK {
		t.Fatalf("second save: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var config models.ConfigEmpresa
	if err := env.db.First(&config, "id = ?", settings.ConfigEmpresaID).Error; err != nil {
		t.Fatalf("load config: %v", err)
	}
	if config.Nome != "Laser & Cia Ltda" {
		t.Fatalf("expected updated name, got %q", config.Nome)
	}

	var count int64
	if err := env.db.Model(&models.ConfigEmpresa{}).Count(&count).Error; err != nil {
		t.Fatalf("count configs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single config row, got %d", count)
	}
}

func TestConfiguracoes_NomeObrigatorio(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/configuracoes/salvar", url.Values{"tagline": {"sem nome"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Nome da empresa é obrigatório") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}
