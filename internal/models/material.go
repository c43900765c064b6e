package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material represents a material catalog entry. The unit price is entered
// per square meter but persisted per square millimeter (input / 1,000,000),
// matching the unit the budget builder works in.
type Material struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	Nome     string  `gorm:"type:text;not null"`                     // Material name.
	PrecoMm2 float64 `gorm:"type:decimal(16,10);not null;default:0"` // Price per square millimeter.

	Ativo bool `gorm:"not null;default:true"` // Whether the material is available.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *Material) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
