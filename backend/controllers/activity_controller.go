package controllers

import (
	"time"

	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *utils.Logger
	Activity *services.ActivityService
	Loc      *time.Location
}

func NewActivityController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *ActivityController {
	return &ActivityController{
		DB:       db,
		Cfg:      cfg,
		Log:      logger,
		Activity: services.NewActivityService(db),
		Loc:      location(cfg),
	}
}

// GetActivity godoc
// @Summary Activity feed
// @Description Log entries newest first with a readable description and a link
// @Tags activity
// @Produce json
// @Param limit query int false "Max entries (default 50, max 500)"
// @Param startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {array} services.ActivityEntry
// @Failure 400 {object} utils.ErrorResponse
// @Router /activity [get]
func (ac *ActivityController) GetActivity(c *fiber.Ctx) error {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		return badRequestFrom(c, err)
	}
	start, end, err := dateRange(c, ac.Loc)
	if err != nil {
		return badRequestFrom(c, err)
	}

	entries, err := ac.Activity.Feed(c.UserContext(), services.ActivityFilter{
		Limit: limit,
		Start: start,
		End:   end,
	})
	if err != nil {
		return respondError(c, ac.Log, err, "Failed to fetch activity")
	}
	return utils.OK(c, entries)
}
