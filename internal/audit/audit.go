package audit

import (
	"context"
	"encoding/json"

	"gestao_laser/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder persists event-log rows for mutating actions.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder constructs a Recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record writes an event-log row. Failures are logged and swallowed; an
// audit write must never fail the action it describes.
func (r *Recorder) Record(ctx context.Context, actor, action, entity, entityID string, payload map[string]any) {
	if r == nil || r.db == nil {
		return
	}

	var blob datatypes.JSON
	if payload != nil {
		raw, errMarshal := json.Marshal(payload)
		if errMarshal != nil {
			log.WithError(errMarshal).Warn("audit: marshal payload failed")
		} else {
			blob = datatypes.JSON(raw)
		}
	}

	row := models.EventLog{
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Payload:  blob,
	}
	if errCreate := r.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).WithFields(log.Fields{
			"action": action,
			"entity": entity,
		}).Warn("audit: record failed")
	}
}
