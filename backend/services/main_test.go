package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"learntrack/backend/config"
	"learntrack/backend/models"
	"learntrack/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
		LogMode:  "production",
	}
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestTopic(t *testing.T, db *gorm.DB, title string) *models.Topic {
	t.Helper()
	topic, err := NewTopicService(db, time.UTC).Create(context.Background(), CreateTopicInput{Title: title})
	require.NoError(t, err)
	return topic
}

func activityFor(t *testing.T, db *gorm.DB, entityID string) []models.ActivityLog {
	t.Helper()
	var logs []models.ActivityLog
	require.NoError(t, db.Where("entity_id = ?", entityID).Order("created_at ASC").Find(&logs).Error)
	return logs
}

// failActivityWrites makes every later ActivityLog insert on db fail.
func failActivityWrites(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_activity", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*models.ActivityLog); ok {
			tx.AddError(errors.New("activity log unavailable"))
		}
	})
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
