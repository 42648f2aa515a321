package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	MinProficiency = 1
	MaxProficiency = 10
)

type Topic struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Title              string     `gorm:"not null" json:"title"`
	Description        *string    `json:"description"`
	CurrentProficiency int        `gorm:"not null;default:1" json:"currentProficiency"`
	TargetProficiency  int        `gorm:"not null;default:10" json:"targetProficiency"`
	Category           *string    `gorm:"index" json:"category"`
	Priority           Priority   `gorm:"size:16;not null;default:medium" json:"priority"`
	StartedLearningAt  *time.Time `json:"startedLearningAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"index" json:"updatedAt"`

	Resources       []Resource       `gorm:"foreignKey:TopicID" json:"resources,omitempty"`
	ProgressUpdates []ProgressUpdate `gorm:"foreignKey:TopicID" json:"progressUpdates,omitempty"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ApplyProgressUpdate syncs the topic's current proficiency to the level
// recorded by update and returns the level it replaced.
func (t *Topic) ApplyProgressUpdate(update *ProgressUpdate) int {
	previous := t.CurrentProficiency
	t.CurrentProficiency = update.ProficiencyLevel
	return previous
}
