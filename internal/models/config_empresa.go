package models

import "time"

// ConfigEmpresa holds company branding shown on printed budgets. A single
// row keyed by a fixed ID, upserted on every read of the settings page.
type ConfigEmpresa struct {
	ID string `gorm:"type:text;primaryKey"` // Fixed singleton key.

	Nome     string `gorm:"type:text"` // Company name.
	Tagline  string `gorm:"type:text"` // Company tagline.
	Telefone string `gorm:"type:text"` // Contact phone.
	Email    string `gorm:"type:text"` // Contact email.
	Cnpj     string `gorm:"type:text"` // Company tax ID.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
