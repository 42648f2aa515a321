package services

import (
	"fmt"

	"learntrack/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordActivity appends one log row using tx, so it commits or rolls back
// together with the write it describes.
func recordActivity(tx *gorm.DB, entry *models.ActivityLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("record %s %s activity: %w", entry.EntityType, entry.Action, err)
	}
	return nil
}

func topicActivity(topic *models.Topic, action models.ActivityAction) *models.ActivityLog {
	return &models.ActivityLog{
		EntityType: models.EntityTopic,
		EntityID:   topic.ID,
		Action:     action,
		TopicID:    strPtr(topic.ID),
		Details:    datatypes.NewJSONType(models.ActivityDetails{Title: topic.Title}),
	}
}

func resourceActivity(resource *models.Resource, action models.ActivityAction, details models.ActivityDetails) *models.ActivityLog {
	entry := &models.ActivityLog{
		EntityType: models.EntityResource,
		EntityID:   resource.ID,
		Action:     action,
		TopicID:    strPtr(resource.TopicID),
		Details:    datatypes.NewJSONType(details),
	}
	if action != models.ActionDeleted {
		entry.ResourceID = strPtr(resource.ID)
	}
	return entry
}

func progressActivity(update *models.ProgressUpdate, action models.ActivityAction, details models.ActivityDetails) *models.ActivityLog {
	entry := &models.ActivityLog{
		EntityType: models.EntityProgress,
		EntityID:   update.ID,
		Action:     action,
		TopicID:    strPtr(update.TopicID),
		Details:    datatypes.NewJSONType(details),
	}
	if action != models.ActionDeleted {
		entry.ProgressUpdateID = strPtr(update.ID)
	}
	return entry
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

// emptyToNil trims an optional text field: a nil pointer stays nil, an empty
// string becomes nil.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
