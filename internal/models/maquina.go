package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Maquina represents a machine catalog entry used for cost estimation.
type Maquina struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	Nome      string  `gorm:"type:text;not null"`                    // Machine name.
	CustoHora float64 `gorm:"type:decimal(12,2);not null;default:0"` // Hourly operating cost.

	Ativa bool `gorm:"not null;default:true"` // Whether the machine is available.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *Maquina) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
