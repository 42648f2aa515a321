package services

import (
	"context"
	"testing"
	"time"

	"learntrack/backend/models"
	"learntrack/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRender(t *testing.T) {
	topic := &models.Topic{ID: "t1", Title: "Go"}
	resource := &models.Resource{ID: "r1", TopicID: "t1", Title: "Effective Go"}
	update := &models.ProgressUpdate{ID: "p1", TopicID: "t1", ProficiencyLevel: 7, Topic: topic}

	tests := []struct {
		name     string
		log      models.ActivityLog
		wantDesc string
		wantLink string
	}{
		{
			name:     "topic created",
			log:      models.ActivityLog{EntityType: models.EntityTopic, Action: models.ActionCreated, Topic: topic},
			wantDesc: `created topic "Go"`,
			wantLink: "/topics/t1",
		},
		{
			name: "deleted topic uses snapshot",
			log: models.ActivityLog{
				EntityType: models.EntityTopic,
				Action:     models.ActionDeleted,
				Details:    datatypes.NewJSONType(models.ActivityDetails{Title: "Old topic"}),
			},
			wantDesc: `deleted topic "Old topic"`,
		},
		{
			name:     "topic without anything",
			log:      models.ActivityLog{EntityType: models.EntityTopic, Action: models.ActionUpdated},
			wantDesc: `updated topic "Unknown"`,
		},
		{
			name: "resource status changed",
			log: models.ActivityLog{
				EntityType: models.EntityResource,
				Action:     models.ActionStatusChanged,
				Resource:   resource,
				Topic:      topic,
			},
			wantDesc: `status changed resource "Effective Go" in "Go"`,
			wantLink: "/topics/t1",
		},
		{
			name: "resource without topic",
			log: models.ActivityLog{
				EntityType: models.EntityResource,
				Action:     models.ActionDeleted,
				Details:    datatypes.NewJSONType(models.ActivityDetails{Title: "Gone"}),
			},
			wantDesc: `deleted resource "Gone"`,
		},
		{
			name:     "progress created",
			log:      models.ActivityLog{EntityType: models.EntityProgress, Action: models.ActionCreated, ProgressUpdate: update},
			wantDesc: `created progress update (Proficiency: 7) for "Go"`,
			wantLink: "/topics/t1",
		},
		{
			name: "deleted progress falls back to snapshot and topic",
			log: models.ActivityLog{
				EntityType: models.EntityProgress,
				Action:     models.ActionDeleted,
				Topic:      topic,
				Details:    datatypes.NewJSONType(models.ActivityDetails{ProficiencyLevel: ptr(3)}),
			},
			wantDesc: `deleted progress update (Proficiency: 3) for "Go"`,
			wantLink: "/topics/t1",
		},
		{
			name:     "unknown entity type",
			log:      models.ActivityLog{EntityType: models.EntityType("goal"), Action: models.ActionStatusChanged},
			wantDesc: "status changed goal",
		},
		{
			name:     "orphaned progress",
			log:      models.ActivityLog{EntityType: models.EntityProgress, Action: models.ActionDeleted},
			wantDesc: `deleted progress update (Proficiency: ?) for "Unknown"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Render(tt.log)
			assert.Equal(t, tt.wantDesc, entry.Description)
			assert.Equal(t, tt.wantLink, entry.Link)
		})
	}
}

func TestFeed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	topic := createTestTopic(t, db, "Go")

	resources := NewResourceService(db)
	resource, err := resources.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "Tour"})
	require.NoError(t, err)
	_, err = resources.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusInProgress)})
	require.NoError(t, err)
	_, err = NewProgressService(db, time.UTC).Create(ctx, CreateProgressInput{TopicID: topic.ID, ProficiencyLevel: ptr(6)})
	require.NoError(t, err)

	svc := NewActivityService(db)
	entries, err := svc.Feed(ctx, ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, `created progress update (Proficiency: 6) for "Go"`, entries[0].Description)
	assert.Equal(t, `status changed resource "Tour" in "Go"`, entries[1].Description)
	assert.Equal(t, `created resource "Tour" in "Go"`, entries[2].Description)
	assert.Equal(t, `created topic "Go"`, entries[3].Description)
	assert.Equal(t, "/topics/"+topic.ID, entries[3].Link)

	limited, err := svc.Feed(ctx, ActivityFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	future := time.Now().Add(time.Hour)
	empty, err := svc.Feed(ctx, ActivityFilter{Start: &future})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFeedDateRangeInConfiguredZone(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	newYork := time.FixedZone("EST", -5*60*60)

	// the first row is still the 9th in New York, the last is already the 11th
	for _, ts := range []time.Time{
		time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 6, 0, 0, 0, newYork),
		time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
	} {
		entry := &models.ActivityLog{EntityType: models.EntityTopic, EntityID: "t1", Action: models.ActionCreated, CreatedAt: ts}
		require.NoError(t, db.Create(entry).Error)
	}

	start, err := utils.ParseDate("2024-03-10", newYork)
	require.NoError(t, err)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	entries, err := NewActivityService(db).Feed(ctx, ActivityFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].CreatedAt.Equal(time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)))
}

func TestCalculateStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, loc)
	day := func(offset, hour int) time.Time {
		return time.Date(2024, 6, 10+offset, hour, 0, 0, 0, loc)
	}

	tests := []struct {
		name   string
		stamps []time.Time
		want   int
	}{
		{name: "three consecutive days", stamps: []time.Time{day(0, 9), day(-1, 9), day(-2, 9)}, want: 3},
		{name: "nothing today", stamps: []time.Time{day(-1, 9), day(-2, 9)}, want: 0},
		{name: "no activity", stamps: nil, want: 0},
		{name: "several entries per day", stamps: []time.Time{day(0, 12), day(0, 8), day(-1, 20), day(-1, 7), day(-3, 9)}, want: 2},
		{name: "gap ends the streak", stamps: []time.Time{day(0, 9), day(-2, 9), day(-3, 9)}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.stamps, now, loc))
		})
	}
}

func TestCalculateStreakUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, tokyo)

	// 2024-06-09 20:00 UTC is already the 10th in Tokyo, while now is the
	// 10th in both zones
	stamps := []time.Time{time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC)}
	assert.Equal(t, 1, CalculateStreak(stamps, now, tokyo))
	assert.Equal(t, 0, CalculateStreak(stamps, now, time.UTC))
}
