package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente represents a customer record.
type Cliente struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	Nome        string `gorm:"type:text;not null"` // Customer name.
	CpfCnpj     string `gorm:"type:text"`          // Tax ID (CPF or CNPJ).
	Telefone    string `gorm:"type:text;not null"` // Phone number.
	Email       string `gorm:"type:text;not null"` // Email address.
	Endereco    string `gorm:"type:text"`          // Street address.
	Observacoes string `gorm:"type:text"`          // Free-form notes.

	Ativo bool `gorm:"not null;default:true"` // Whether the customer is active.

	Orcamentos []Orcamento `gorm:"foreignKey:ClienteID"` // Budgets issued to this customer.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
