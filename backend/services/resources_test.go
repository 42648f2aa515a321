package services

import (
	"context"
	"testing"
	"time"

	"learntrack/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateResource(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewResourceService(db)
	topic := createTestTopic(t, db, "Go")

	resource, err := svc.Create(ctx, CreateResourceInput{
		TopicID: topic.ID,
		Title:   "The Go Programming Language",
		Type:    ptr(models.ResourceTypeBook),
		URL:     ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, resource.Status)
	assert.Nil(t, resource.URL)
	assert.Nil(t, resource.StartedAt)
	assert.Nil(t, resource.CompletedAt)

	logs := activityFor(t, db, resource.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreated, logs[0].Action)
	require.NotNil(t, logs[0].ResourceID)
	assert.Equal(t, resource.ID, *logs[0].ResourceID)
	require.NotNil(t, logs[0].TopicID)
	assert.Equal(t, topic.ID, *logs[0].TopicID)
	assert.Equal(t, models.ResourceTypeBook, logs[0].Details.Data().Type)

	completed, err := svc.Create(ctx, CreateResourceInput{
		TopicID: topic.ID,
		Title:   "Tour of Go",
		Status:  ptr(models.StatusCompleted),
	})
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)

	_, err = svc.Create(ctx, CreateResourceInput{TopicID: "missing", Title: "x"})
	assert.True(t, IsNotFound(err))
	_, err = svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "x", URL: ptr("not a url")})
	assert.True(t, IsValidation(err))
	// links must be absolute
	_, err = svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "x", URL: ptr("example.com")})
	assert.True(t, IsValidation(err))
	_, err = svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "x", Type: ptr(models.ResourceType("podcast"))})
	assert.True(t, IsValidation(err))
}

func TestResourceStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewResourceService(db)
	topic := createTestTopic(t, db, "Go")

	t1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = fixedClock(t1)
	resource, err := svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "Effective Go"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusInProgress)})
	require.NoError(t, err)
	require.NotNil(t, updated.StartedAt)
	assert.True(t, updated.StartedAt.Equal(t1))
	assert.Nil(t, updated.CompletedAt)

	logs := activityFor(t, db, resource.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionStatusChanged, logs[1].Action)
	assert.Equal(t, models.StatusNotStarted, logs[1].Details.Data().OldStatus)
	assert.Equal(t, models.StatusInProgress, logs[1].Details.Data().NewStatus)

	t2 := t1.Add(48 * time.Hour)
	svc.Now = fixedClock(t2)
	updated, err = svc.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusCompleted)})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(t2))
	assert.True(t, updated.StartedAt.Equal(t1))

	// completing again keeps the first completion time
	svc.Now = fixedClock(t2.Add(time.Hour))
	updated, err = svc.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusCompleted), Notes: ptr("reread")})
	require.NoError(t, err)
	assert.True(t, updated.CompletedAt.Equal(t2))

	logs = activityFor(t, db, resource.ID)
	require.Len(t, logs, 4)
	assert.Equal(t, models.ActionUpdated, logs[3].Action)

	updated, err = svc.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
	assert.True(t, updated.StartedAt.Equal(t1))

	_, err = svc.Update(ctx, "missing", UpdateResourceInput{Title: ptr("x")})
	assert.True(t, IsNotFound(err))
	_, err = svc.Update(ctx, resource.ID, UpdateResourceInput{Title: ptr("  ")})
	assert.True(t, IsValidation(err))
}

func TestListResourcesOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewResourceService(db)
	topic := createTestTopic(t, db, "Go")
	other := createTestTopic(t, db, "Rust")

	for _, in := range []CreateResourceInput{
		{TopicID: topic.ID, Title: "second", Order: ptr(2)},
		{TopicID: topic.ID, Title: "first", Order: ptr(1), Status: ptr(models.StatusInProgress)},
		{TopicID: other.ID, Title: "elsewhere"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	resources, err := svc.List(ctx, ResourceFilter{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "first", resources[0].Title)
	assert.Equal(t, "second", resources[1].Title)
	require.NotNil(t, resources[0].Topic)
	assert.Equal(t, "Go", resources[0].Topic.Title)

	inProgress, err := svc.List(ctx, ResourceFilter{Status: string(models.StatusInProgress)})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "first", inProgress[0].Title)
}

func TestDeleteResource(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewResourceService(db)
	topic := createTestTopic(t, db, "Go")

	resource, err := svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "Blog post"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, resource.ID))

	_, err = svc.Get(ctx, resource.ID)
	assert.True(t, IsNotFound(err))

	logs := activityFor(t, db, resource.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionDeleted, logs[1].Action)
	assert.Nil(t, logs[1].ResourceID)
	assert.Equal(t, "Blog post", logs[1].Details.Data().Title)

	assert.True(t, IsNotFound(svc.Delete(ctx, resource.ID)))
}

func TestUpdateResourceRollsBackWhenLogFails(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewResourceService(db)
	topic := createTestTopic(t, db, "Go")
	resource, err := svc.Create(ctx, CreateResourceInput{TopicID: topic.ID, Title: "Tour"})
	require.NoError(t, err)
	failActivityWrites(t, db)

	_, err = svc.Update(ctx, resource.ID, UpdateResourceInput{Status: ptr(models.StatusCompleted)})
	require.Error(t, err)

	var reloaded models.Resource
	require.NoError(t, db.First(&reloaded, "id = ?", resource.ID).Error)
	assert.Equal(t, models.StatusNotStarted, reloaded.Status)
	assert.Nil(t, reloaded.CompletedAt)
}
