package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceType string

const (
	ResourceTypeBook    ResourceType = "book"
	ResourceTypeCourse  ResourceType = "course"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeOther   ResourceType = "other"
)

type ResourceStatus string

const (
	StatusNotStarted ResourceStatus = "not_started"
	StatusInProgress ResourceStatus = "in_progress"
	StatusCompleted  ResourceStatus = "completed"
)

// ResourceStatuses lists every status in display order.
var ResourceStatuses = []ResourceStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

type Resource struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	TopicID     string         `gorm:"size:36;not null;index" json:"topicId"`
	Title       string         `gorm:"not null" json:"title"`
	URL         *string        `gorm:"column:url" json:"url"`
	Type        ResourceType   `gorm:"size:16;not null;default:other" json:"type"`
	Status      ResourceStatus `gorm:"size:16;not null;default:not_started;index" json:"status"`
	Notes       *string        `json:"notes"`
	Order       int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	StartedAt   *time.Time     `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ApplyStatus moves the resource to status and maintains StartedAt and
// CompletedAt. StartedAt is only ever set once; CompletedAt is set on entering
// completed and cleared on any other status. It reports whether the status
// value changed.
func (r *Resource) ApplyStatus(status ResourceStatus, now time.Time) bool {
	changed := r.Status != status
	r.Status = status

	switch status {
	case StatusInProgress:
		if r.StartedAt == nil {
			r.StartedAt = &now
		}
	case StatusCompleted:
		if r.CompletedAt == nil {
			r.CompletedAt = &now
		}
	}
	if status != StatusCompleted {
		r.CompletedAt = nil
	}

	return changed
}
