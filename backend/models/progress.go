package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressUpdate is never edited after creation, only deleted.
type ProgressUpdate struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	TopicID          string     `gorm:"size:36;not null;index" json:"topicId"`
	ProficiencyLevel int        `gorm:"not null" json:"proficiencyLevel"`
	Notes            *string    `json:"notes"`
	LearningDate     *time.Time `json:"learningDate"`
	CreatedAt        time.Time  `gorm:"index" json:"createdAt"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (p *ProgressUpdate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return nil
}
