package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learntrack/backend/models"
	"learntrack/backend/utils"

	"gorm.io/gorm"
)

type ProgressService struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewProgressService(db *gorm.DB, loc *time.Location) *ProgressService {
	return &ProgressService{DB: db, Loc: loc}
}

type CreateProgressInput struct {
	TopicID          string  `json:"topicId" validate:"required"`
	ProficiencyLevel *int    `json:"proficiencyLevel" validate:"required"`
	Notes            *string `json:"notes"`
	LearningDate     *string `json:"learningDate"`
}

type ProgressFilter struct {
	TopicID string
	Start   *time.Time
	End     *time.Time
}

func (s *ProgressService) List(ctx context.Context, filter ProgressFilter) ([]models.ProgressUpdate, error) {
	query := s.DB.WithContext(ctx).Preload("Topic")
	if filter.TopicID != "" {
		query = query.Where("topic_id = ?", filter.TopicID)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", filter.Start.UTC())
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", filter.End.UTC())
	}

	var updates []models.ProgressUpdate
	if err := query.Order("created_at DESC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("list progress updates: %w", err)
	}
	return updates, nil
}

// Create records a progress update and moves the topic's current proficiency
// to the new level. The log row keeps the level it replaced.
func (s *ProgressService) Create(ctx context.Context, in CreateProgressInput) (*models.ProgressUpdate, error) {
	in.TopicID = strings.TrimSpace(in.TopicID)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := checkProficiency("proficiencyLevel", in.ProficiencyLevel); err != nil {
		return nil, err
	}
	learningDate, err := utils.ParseOptionalDate(deref(in.LearningDate), s.Loc)
	if err != nil {
		return nil, invalid("learningDate: %v", err)
	}

	update := &models.ProgressUpdate{
		TopicID:          in.TopicID,
		ProficiencyLevel: *in.ProficiencyLevel,
		Notes:            emptyToNil(in.Notes),
		LearningDate:     learningDate,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.First(&topic, "id = ?", in.TopicID).Error; err != nil {
			return notFound(err, "Topic")
		}

		if err := tx.Create(update).Error; err != nil {
			return fmt.Errorf("create progress update: %w", err)
		}

		previous := topic.ApplyProgressUpdate(update)
		if err := tx.Model(&topic).Update("current_proficiency", topic.CurrentProficiency).Error; err != nil {
			return fmt.Errorf("sync topic proficiency: %w", err)
		}

		details := models.ActivityDetails{
			ProficiencyLevel:    intPtr(update.ProficiencyLevel),
			PreviousProficiency: intPtr(previous),
		}
		return recordActivity(tx, progressActivity(update, models.ActionCreated, details))
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// Delete removes a progress update. The topic's current proficiency is not
// rolled back.
func (s *ProgressService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var update models.ProgressUpdate
		if err := tx.First(&update, "id = ?", id).Error; err != nil {
			return notFound(err, "Progress update")
		}
		if err := tx.Delete(&update).Error; err != nil {
			return fmt.Errorf("delete progress update: %w", err)
		}
		details := models.ActivityDetails{ProficiencyLevel: intPtr(update.ProficiencyLevel)}
		return recordActivity(tx, progressActivity(&update, models.ActionDeleted, details))
	})
}
