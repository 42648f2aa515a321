package services

import (
	"context"
	"fmt"
	"time"

	"learntrack/backend/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dashboardRecentLimit = 5

type DashboardService struct {
	DB       *gorm.DB
	Activity *ActivityService
	Loc      *time.Location
	Now      func() time.Time
}

func NewDashboardService(db *gorm.DB, activity *ActivityService, loc *time.Location) *DashboardService {
	return &DashboardService{DB: db, Activity: activity, Loc: loc, Now: time.Now}
}

type Dashboard struct {
	TotalTopics          int64                           `json:"totalTopics"`
	TotalResources       int64                           `json:"totalResources"`
	ResourcesByStatus    map[models.ResourceStatus]int64 `json:"resourcesByStatus"`
	TotalProgressUpdates int64                           `json:"totalProgressUpdates"`
	RecentTopics         []models.Topic                  `json:"recentTopics"`
	RecentProgress       []models.ProgressUpdate         `json:"recentProgress"`
	Streak               int                             `json:"streak"`
}

// Summary runs the dashboard's independent reads concurrently.
func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{
		ResourcesByStatus: make(map[models.ResourceStatus]int64, len(models.ResourceStatuses)),
	}
	for _, status := range models.ResourceStatuses {
		d.ResourcesByStatus[status] = 0
	}

	var statusCounts []struct {
		Status models.ResourceStatus
		Count  int64
	}

	g, gctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return s.DB.WithContext(gctx) }

	g.Go(func() error {
		return wrap("count topics", db().Model(&models.Topic{}).Count(&d.TotalTopics).Error)
	})
	g.Go(func() error {
		return wrap("count resources", db().Model(&models.Resource{}).Count(&d.TotalResources).Error)
	})
	g.Go(func() error {
		return wrap("count resources by status", db().Model(&models.Resource{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&statusCounts).Error)
	})
	g.Go(func() error {
		return wrap("count progress updates", db().Model(&models.ProgressUpdate{}).Count(&d.TotalProgressUpdates).Error)
	})
	g.Go(func() error {
		if err := db().Preload("Resources", orderResources).
			Order("updated_at DESC").
			Limit(dashboardRecentLimit).
			Find(&d.RecentTopics).Error; err != nil {
			return wrap("load recent topics", err)
		}
		return attachLatestProgress(db(), d.RecentTopics)
	})
	g.Go(func() error {
		return wrap("load recent progress", db().Preload("Topic").
			Order("created_at DESC").
			Limit(dashboardRecentLimit).
			Find(&d.RecentProgress).Error)
	})
	g.Go(func() error {
		stamps, err := s.Activity.RecentTimestamps(gctx, StreakWindow)
		if err != nil {
			return err
		}
		d.Streak = CalculateStreak(stamps, s.Now(), s.Loc)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		d.ResourcesByStatus[sc.Status] = sc.Count
	}
	return d, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
