package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Orcamento status values. A budget starts Pendente and moves to Aprovado
// or Recusado exactly once.
const (
	// OrcamentoStatusPendente marks a budget awaiting a decision.
	OrcamentoStatusPendente = "Pendente"
	// OrcamentoStatusAprovado marks an approved budget with a matching order.
	OrcamentoStatusAprovado = "Aprovado"
	// OrcamentoStatusRecusado marks a rejected budget.
	OrcamentoStatusRecusado = "Recusado"
)

// DefaultMargemLucro is the profit margin applied when none is supplied.
const DefaultMargemLucro = 30

// Orcamento represents a price quotation issued to a customer.
type Orcamento struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	ClienteID *string  `gorm:"index"`                // Linked customer ID, nil for walk-ins.
	Cliente   *Cliente `gorm:"foreignKey:ClienteID"` // Linked customer record.

	NomeCliente string `gorm:"type:text"` // Free-text customer name when no Cliente is linked.

	Descricao       string `gorm:"type:text"` // Job description.
	ItensDetalhados string `gorm:"type:text"` // Itemized breakdown produced by the budget builder.

	Subtotal         float64 `gorm:"type:decimal(12,2);not null;default:0"`  // Cost subtotal.
	MargemLucro      float64 `gorm:"type:decimal(6,2);not null;default:30"`  // Profit margin percentage.
	GastosAdicionais float64 `gorm:"type:decimal(12,2);not null;default:0"`  // Extra costs.
	ValorFinal       float64 `gorm:"type:decimal(12,2);not null;default:0"`  // Final quoted value.

	Status string `gorm:"type:text;not null;default:Pendente"` // Lifecycle status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (o *Orcamento) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
