package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pedido status values.
const (
	// PedidoStatusPendente marks an order not yet in production.
	PedidoStatusPendente = "Pendente"
	// PedidoStatusEmProducao marks an order being produced.
	PedidoStatusEmProducao = "EmProducao"
	// PedidoStatusConcluido marks a finished order.
	PedidoStatusConcluido = "Concluido"
)

// Pedido represents a production order. Orders are created automatically
// when a budget is approved, or manually without a budget link.
type Pedido struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	// OrcamentoID links back to the approved budget. The unique index keeps
	// the budget-to-order relation at most one-to-one; manual orders carry
	// nil, which the index ignores.
	OrcamentoID *string    `gorm:"uniqueIndex:idx_pedidos_orcamento"`                       // Source budget ID.
	Orcamento   *Orcamento `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:SET NULL"` // Source budget record; survives budget deletion.

	Cliente string `gorm:"type:text;not null"` // Customer name, denormalized at approval time.

	Valor       float64   `gorm:"type:decimal(12,2);not null;default:0"` // Order value.
	DataEntrega time.Time `gorm:"not null"`                              // Agreed delivery date.

	Status string `gorm:"type:text;not null;default:Pendente"` // Lifecycle status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *Pedido) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
