package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learntrack/backend/models"
	"learntrack/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicService struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewTopicService(db *gorm.DB, loc *time.Location) *TopicService {
	return &TopicService{DB: db, Loc: loc}
}

type CreateTopicInput struct {
	Title              string           `json:"title" validate:"required"`
	Description        *string          `json:"description"`
	CurrentProficiency *int             `json:"currentProficiency"`
	TargetProficiency  *int             `json:"targetProficiency"`
	Category           *string          `json:"category"`
	Priority           *models.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	StartedLearningAt  *string          `json:"startedLearningAt"`
}

// UpdateTopicInput is a partial update: nil fields are left alone, and an
// empty string clears an optional field.
type UpdateTopicInput struct {
	Title              *string          `json:"title"`
	Description        *string          `json:"description"`
	CurrentProficiency *int             `json:"currentProficiency"`
	TargetProficiency  *int             `json:"targetProficiency"`
	Category           *string          `json:"category"`
	Priority           *models.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	StartedLearningAt  *string          `json:"startedLearningAt"`
}

type TopicFilter struct {
	Category  string
	SortBy    string
	SortOrder string
}

var topicSortColumns = map[string]string{
	"title":              "title",
	"category":           "category",
	"priority":           "priority",
	"currentProficiency": "current_proficiency",
	"targetProficiency":  "target_proficiency",
	"startedLearningAt":  "started_learning_at",
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
}

// checkProficiency validates an optional 1-10 score.
func checkProficiency(field string, value *int) error {
	if value == nil {
		return nil
	}
	if *value < models.MinProficiency || *value > models.MaxProficiency {
		return invalid("%s must be between %d and %d", field, models.MinProficiency, models.MaxProficiency)
	}
	return nil
}

func (s *TopicService) List(ctx context.Context, filter TopicFilter) ([]models.Topic, error) {
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "updatedAt"
	}
	column, ok := topicSortColumns[sortBy]
	if !ok {
		return nil, invalid("cannot sort topics by %q", sortBy)
	}

	desc := true
	switch strings.ToLower(filter.SortOrder) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, invalid("sortOrder must be asc or desc")
	}

	query := s.DB.WithContext(ctx).Model(&models.Topic{}).Preload("Resources", orderResources)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var topics []models.Topic
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	if err := attachLatestProgress(s.DB.WithContext(ctx), topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *TopicService) Get(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	err := s.DB.WithContext(ctx).
		Preload("Resources", orderResources).
		Preload("ProgressUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&topic, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "Topic")
	}
	return &topic, nil
}

func (s *TopicService) Create(ctx context.Context, in CreateTopicInput) (*models.Topic, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := checkProficiency("currentProficiency", in.CurrentProficiency); err != nil {
		return nil, err
	}
	if err := checkProficiency("targetProficiency", in.TargetProficiency); err != nil {
		return nil, err
	}
	startedLearningAt, err := utils.ParseOptionalDate(deref(in.StartedLearningAt), s.Loc)
	if err != nil {
		return nil, invalid("startedLearningAt: %v", err)
	}

	topic := &models.Topic{
		Title:              in.Title,
		Description:        emptyToNil(in.Description),
		CurrentProficiency: models.MinProficiency,
		TargetProficiency:  models.MaxProficiency,
		Category:           emptyToNil(in.Category),
		Priority:           models.PriorityMedium,
		StartedLearningAt:  startedLearningAt,
	}
	if in.CurrentProficiency != nil {
		topic.CurrentProficiency = *in.CurrentProficiency
	}
	if in.TargetProficiency != nil {
		topic.TargetProficiency = *in.TargetProficiency
	}
	if in.Priority != nil {
		topic.Priority = *in.Priority
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(topic).Error; err != nil {
			return fmt.Errorf("create topic: %w", err)
		}
		return recordActivity(tx, topicActivity(topic, models.ActionCreated))
	})
	if err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) Update(ctx context.Context, id string, in UpdateTopicInput) (*models.Topic, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		if trimmed == "" {
			return nil, invalid("title cannot be empty")
		}
		in.Title = &trimmed
	}
	if err := checkProficiency("currentProficiency", in.CurrentProficiency); err != nil {
		return nil, err
	}
	if err := checkProficiency("targetProficiency", in.TargetProficiency); err != nil {
		return nil, err
	}
	var startedLearningAt *time.Time
	if in.StartedLearningAt != nil {
		parsed, err := utils.ParseOptionalDate(*in.StartedLearningAt, s.Loc)
		if err != nil {
			return nil, invalid("startedLearningAt: %v", err)
		}
		startedLearningAt = parsed
	}

	var topic models.Topic
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&topic, "id = ?", id).Error; err != nil {
			return notFound(err, "Topic")
		}

		if in.Title != nil {
			topic.Title = *in.Title
		}
		if in.Description != nil {
			topic.Description = emptyToNil(in.Description)
		}
		if in.CurrentProficiency != nil {
			topic.CurrentProficiency = *in.CurrentProficiency
		}
		if in.TargetProficiency != nil {
			topic.TargetProficiency = *in.TargetProficiency
		}
		if in.Category != nil {
			topic.Category = emptyToNil(in.Category)
		}
		if in.Priority != nil {
			topic.Priority = *in.Priority
		}
		if in.StartedLearningAt != nil {
			topic.StartedLearningAt = startedLearningAt
		}

		if err := tx.Save(&topic).Error; err != nil {
			return fmt.Errorf("update topic: %w", err)
		}
		return recordActivity(tx, topicActivity(&topic, models.ActionUpdated))
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Delete removes the topic with its resources and progress updates. Activity
// rows that reference it are kept.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.First(&topic, "id = ?", id).Error; err != nil {
			return notFound(err, "Topic")
		}

		if err := tx.Where("topic_id = ?", topic.ID).Delete(&models.Resource{}).Error; err != nil {
			return fmt.Errorf("delete topic resources: %w", err)
		}
		if err := tx.Where("topic_id = ?", topic.ID).Delete(&models.ProgressUpdate{}).Error; err != nil {
			return fmt.Errorf("delete topic progress updates: %w", err)
		}
		if err := tx.Delete(&topic).Error; err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		return recordActivity(tx, topicActivity(&topic, models.ActionDeleted))
	})
}

func orderResources(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("created_at ASC")
}

// attachLatestProgress sets ProgressUpdates on each topic to its newest
// update only.
func attachLatestProgress(db *gorm.DB, topics []models.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	ids := make([]string, len(topics))
	for i := range topics {
		ids[i] = topics[i].ID
	}

	var updates []models.ProgressUpdate
	if err := db.Where("topic_id IN ?", ids).Order("created_at DESC").Find(&updates).Error; err != nil {
		return fmt.Errorf("load latest progress: %w", err)
	}

	latest := make(map[string]models.ProgressUpdate, len(topics))
	for _, u := range updates {
		if _, seen := latest[u.TopicID]; !seen {
			latest[u.TopicID] = u
		}
	}
	for i := range topics {
		topics[i].ProgressUpdates = []models.ProgressUpdate{}
		if u, ok := latest[topics[i].ID]; ok {
			topics[i].ProgressUpdates = append(topics[i].ProgressUpdates, u)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
