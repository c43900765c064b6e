package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles understood by the access gate.
const (
	// RoleAdmin grants access to every route.
	RoleAdmin = "admin"
	// RoleCliente restricts the account to its own orders and approved budgets.
	RoleCliente = "cliente"
)

// User represents a login account stored in the database.
type User struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key; doubles as the session cookie value.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Bcrypt password hash.
	Role     string `gorm:"type:text;not null;default:admin"` // Account role.

	ClienteID *string  `gorm:"index"`                                              // Linked client ID for cliente accounts.
	Cliente   *Cliente `gorm:"foreignKey:ClienteID;constraint:OnDelete:SET NULL"` // Linked client record.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
