package controllers

import (
	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *utils.Logger
	Progress *services.ProgressService
}

func NewProgressController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *ProgressController {
	return &ProgressController{
		DB:       db,
		Cfg:      cfg,
		Log:      logger,
		Progress: services.NewProgressService(db, location(cfg)),
	}
}

// GetProgress godoc
// @Summary List progress updates
// @Description Returns progress updates newest first, each with its topic
// @Tags progress
// @Produce json
// @Param topicId query string false "Filter by topic"
// @Param startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {array} models.ProgressUpdate
// @Failure 400 {object} utils.ErrorResponse
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	start, end, err := dateRange(c, pc.Progress.Loc)
	if err != nil {
		return badRequestFrom(c, err)
	}

	updates, err := pc.Progress.List(c.UserContext(), services.ProgressFilter{
		TopicID: c.Query("topicId"),
		Start:   start,
		End:     end,
	})
	if err != nil {
		return respondError(c, pc.Log, err, "Failed to fetch progress updates")
	}
	return utils.OK(c, updates)
}

// CreateProgress godoc
// @Summary Record a progress update
// @Description Also moves the topic's currentProficiency to the new level
// @Tags progress
// @Accept json
// @Produce json
// @Success 201 {object} models.ProgressUpdate
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress [post]
func (pc *ProgressController) CreateProgress(c *fiber.Ctx) error {
	var in services.CreateProgressInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	update, err := pc.Progress.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, pc.Log, err, "Failed to create progress update")
	}
	return utils.Created(c, update)
}

// DeleteProgress godoc
// @Summary Delete progress update
// @Description The topic's currentProficiency is left unchanged
// @Tags progress
// @Produce json
// @Param id path string true "Progress update ID"
// @Success 200 {object} utils.DeletedResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress/{id} [delete]
func (pc *ProgressController) DeleteProgress(c *fiber.Ctx) error {
	if err := pc.Progress.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, pc.Log, err, "Failed to delete progress update")
	}
	return utils.Deleted(c)
}
