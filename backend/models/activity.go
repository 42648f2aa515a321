package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntityType string

const (
	EntityTopic    EntityType = "topic"
	EntityResource EntityType = "resource"
	EntityProgress EntityType = "progress"
)

type ActivityAction string

const (
	ActionCreated       ActivityAction = "created"
	ActionUpdated       ActivityAction = "updated"
	ActionDeleted       ActivityAction = "deleted"
	ActionStatusChanged ActivityAction = "status_changed"
)

// ActivityDetails is the snapshot stored with each log row. It stays readable
// after the entity it describes has been deleted.
type ActivityDetails struct {
	Title               string         `json:"title,omitempty"`
	Type                ResourceType   `json:"type,omitempty"`
	OldStatus           ResourceStatus `json:"oldStatus,omitempty"`
	NewStatus           ResourceStatus `json:"newStatus,omitempty"`
	ProficiencyLevel    *int           `json:"proficiencyLevel,omitempty"`
	PreviousProficiency *int           `json:"previousProficiency,omitempty"`
}

// ActivityLog is append-only. EntityType/EntityID identify the affected record;
// the optional ids are denormalized back-references and may point at rows that
// no longer exist.
type ActivityLog struct {
	ID               string                               `gorm:"primaryKey;size:36" json:"id"`
	EntityType       EntityType                           `gorm:"size:16;not null;index" json:"entityType"`
	EntityID         string                               `gorm:"size:36;not null;index" json:"entityId"`
	Action           ActivityAction                       `gorm:"size:32;not null" json:"action"`
	TopicID          *string                              `gorm:"size:36;index" json:"topicId"`
	ResourceID       *string                              `gorm:"size:36" json:"resourceId"`
	ProgressUpdateID *string                              `gorm:"size:36" json:"progressUpdateId"`
	Details          datatypes.JSONType[ActivityDetails] `json:"details"`
	CreatedAt        time.Time                            `gorm:"index" json:"createdAt"`

	Topic          *Topic          `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Resource       *Resource       `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	ProgressUpdate *ProgressUpdate `gorm:"foreignKey:ProgressUpdateID" json:"progressUpdate,omitempty"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return nil
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Topic{},
		&Resource{},
		&ProgressUpdate{},
		&ActivityLog{},
	}
}
