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

type ResourceService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db, Now: time.Now}
}

type CreateResourceInput struct {
	TopicID string                 `json:"topicId" validate:"required"`
	Title   string                 `json:"title" validate:"required"`
	URL     *string                `json:"url" validate:"omitempty,url"`
	Type    *models.ResourceType   `json:"type" validate:"omitempty,oneof=book course article video other"`
	Status  *models.ResourceStatus `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	Notes   *string                `json:"notes"`
	Order   *int                   `json:"order"`
}

// UpdateResourceInput is a partial update; see UpdateTopicInput.
type UpdateResourceInput struct {
	Title  *string                `json:"title"`
	URL    *string                `json:"url" validate:"omitempty,url"`
	Type   *models.ResourceType   `json:"type" validate:"omitempty,oneof=book course article video other"`
	Status *models.ResourceStatus `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	Notes  *string                `json:"notes"`
	Order  *int                   `json:"order"`
}

type ResourceFilter struct {
	TopicID string
	Status  string
}

func (s *ResourceService) List(ctx context.Context, filter ResourceFilter) ([]models.Resource, error) {
	query := s.DB.WithContext(ctx).Preload("Topic")
	if filter.TopicID != "" {
		query = query.Where("topic_id = ?", filter.TopicID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var resources []models.Resource
	if err := orderResources(query).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	var resource models.Resource
	if err := s.DB.WithContext(ctx).Preload("Topic").First(&resource, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Resource")
	}
	return &resource, nil
}

func (s *ResourceService) Create(ctx context.Context, in CreateResourceInput) (*models.Resource, error) {
	if err := s.validateCreate(&in); err != nil {
		return nil, err
	}

	var resource *models.Resource
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Topic{}, "id = ?", in.TopicID).Error; err != nil {
			return notFound(err, "Topic")
		}
		created, err := s.create(tx, in)
		resource = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) validateCreate(in *CreateResourceInput) error {
	in.TopicID = strings.TrimSpace(in.TopicID)
	in.Title = strings.TrimSpace(in.Title)
	in.URL = emptyToNil(in.URL)
	if err := utils.ValidateStruct(in); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// create inserts a validated resource and its log row. The topic must already
// have been checked inside tx.
func (s *ResourceService) create(tx *gorm.DB, in CreateResourceInput) (*models.Resource, error) {
	resource := &models.Resource{
		TopicID: in.TopicID,
		Title:   in.Title,
		URL:     emptyToNil(in.URL),
		Type:    models.ResourceTypeOther,
		Notes:   emptyToNil(in.Notes),
	}
	if in.Type != nil {
		resource.Type = *in.Type
	}
	if in.Order != nil {
		resource.Order = *in.Order
	}
	status := models.StatusNotStarted
	if in.Status != nil {
		status = *in.Status
	}
	resource.ApplyStatus(status, s.Now())

	if err := tx.Create(resource).Error; err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	details := models.ActivityDetails{Title: resource.Title, Type: resource.Type}
	if err := recordActivity(tx, resourceActivity(resource, models.ActionCreated, details)); err != nil {
		return nil, err
	}
	return resource, nil
}

// Update applies a partial edit. A change of status is logged as
// status_changed with the old and new values; any other edit as updated.
func (s *ResourceService) Update(ctx context.Context, id string, in UpdateResourceInput) (*models.Resource, error) {
	clearURL := in.URL != nil && *in.URL == ""
	if clearURL {
		in.URL = nil
	}
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

	var resource models.Resource
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&resource, "id = ?", id).Error; err != nil {
			return notFound(err, "Resource")
		}

		if in.Title != nil {
			resource.Title = *in.Title
		}
		if clearURL {
			resource.URL = nil
		} else if in.URL != nil {
			resource.URL = in.URL
		}
		if in.Type != nil {
			resource.Type = *in.Type
		}
		if in.Notes != nil {
			resource.Notes = emptyToNil(in.Notes)
		}
		if in.Order != nil {
			resource.Order = *in.Order
		}

		oldStatus := resource.Status
		statusChanged := false
		if in.Status != nil {
			statusChanged = resource.ApplyStatus(*in.Status, s.Now())
		}

		if err := tx.Save(&resource).Error; err != nil {
			return fmt.Errorf("update resource: %w", err)
		}

		if statusChanged {
			details := models.ActivityDetails{
				Title:     resource.Title,
				OldStatus: oldStatus,
				NewStatus: resource.Status,
			}
			return recordActivity(tx, resourceActivity(&resource, models.ActionStatusChanged, details))
		}
		details := models.ActivityDetails{Title: resource.Title}
		return recordActivity(tx, resourceActivity(&resource, models.ActionUpdated, details))
	})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := tx.First(&resource, "id = ?", id).Error; err != nil {
			return notFound(err, "Resource")
		}
		if err := tx.Delete(&resource).Error; err != nil {
			return fmt.Errorf("delete resource: %w", err)
		}
		details := models.ActivityDetails{Title: resource.Title}
		return recordActivity(tx, resourceActivity(&resource, models.ActionDeleted, details))
	})
}
