package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learntrack/backend/models"

	"gorm.io/gorm"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
	unknownTitle         = "Unknown"
)

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

type ActivityFilter struct {
	Limit int
	Start *time.Time
	End   *time.Time
}

// ActivityEntry is a log row plus its rendered description and the page it
// points at (empty when the subject is gone).
type ActivityEntry struct {
	models.ActivityLog
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// Feed returns log rows newest first with their related records attached.
func (s *ActivityService) Feed(ctx context.Context, filter ActivityFilter) ([]ActivityEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	query := s.DB.WithContext(ctx).
		Preload("Topic").
		Preload("Resource").
		Preload("ProgressUpdate.Topic")
	if filter.Start != nil {
		query = query.Where("created_at >= ?", filter.Start.UTC())
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", filter.End.UTC())
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}

	entries := make([]ActivityEntry, len(logs))
	for i := range logs {
		entries[i] = Render(logs[i])
	}
	return entries, nil
}

// RecentTimestamps returns createdAt of the newest n log rows, newest first.
func (s *ActivityService) RecentTimestamps(ctx context.Context, n int) ([]time.Time, error) {
	var stamps []time.Time
	if err := s.DB.WithContext(ctx).Model(&models.ActivityLog{}).
		Order("created_at DESC").
		Limit(n).
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, fmt.Errorf("load activity timestamps: %w", err)
	}
	return stamps, nil
}

type renderer func(log models.ActivityLog, action string) (description, link string)

var renderers = map[models.EntityType]renderer{
	models.EntityTopic:    renderTopic,
	models.EntityResource: renderResource,
	models.EntityProgress: renderProgress,
}

// Render derives the human readable description and link for one log row.
func Render(log models.ActivityLog) ActivityEntry {
	action := strings.ReplaceAll(string(log.Action), "_", " ")

	entry := ActivityEntry{ActivityLog: log}
	if render, ok := renderers[log.EntityType]; ok {
		entry.Description, entry.Link = render(log, action)
	} else {
		entry.Description = fmt.Sprintf("%s %s", action, log.EntityType)
	}
	return entry
}

func renderTopic(log models.ActivityLog, action string) (string, string) {
	title := fallbackTitle(log)
	link := ""
	if log.Topic != nil {
		title = log.Topic.Title
		link = topicLink(log.Topic.ID)
	}
	return fmt.Sprintf("%s topic \"%s\"", action, title), link
}

func renderResource(log models.ActivityLog, action string) (string, string) {
	title := fallbackTitle(log)
	if log.Resource != nil {
		title = log.Resource.Title
	}
	description := fmt.Sprintf("%s resource \"%s\"", action, title)

	link := ""
	if log.Topic != nil {
		description += fmt.Sprintf(" in \"%s\"", log.Topic.Title)
		link = topicLink(log.Topic.ID)
	}
	return description, link
}

func renderProgress(log models.ActivityLog, action string) (string, string) {
	level := "?"
	if lvl := log.Details.Data().ProficiencyLevel; lvl != nil {
		level = fmt.Sprint(*lvl)
	}

	var topic *models.Topic
	if log.ProgressUpdate != nil {
		level = fmt.Sprint(log.ProgressUpdate.ProficiencyLevel)
		topic = log.ProgressUpdate.Topic
	}
	if topic == nil {
		topic = log.Topic
	}

	topicTitle := unknownTitle
	link := ""
	if topic != nil {
		topicTitle = topic.Title
		link = topicLink(topic.ID)
	}
	return fmt.Sprintf("%s progress update (Proficiency: %s) for \"%s\"", action, level, topicTitle), link
}

// fallbackTitle is the title snapshot stored with the row, used once the
// live record is gone.
func fallbackTitle(log models.ActivityLog) string {
	if title := log.Details.Data().Title; title != "" {
		return title
	}
	return unknownTitle
}

func topicLink(id string) string {
	return "/topics/" + id
}
