package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventLog records a mutating action for auditing. Rows are written
// best-effort after the action commits; a failed audit write never fails
// the request.
type EventLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Actor    string `gorm:"type:text;not null;index"` // Username that performed the action.
	Action   string `gorm:"type:text;not null"`       // Action name, e.g. "aprovar".
	Entity   string `gorm:"type:text;not null;index"` // Entity kind, e.g. "orcamento".
	EntityID string `gorm:"type:text"`                // Affected record ID.

	Payload datatypes.JSON `gorm:"type:jsonb"` // Action payload snapshot.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
