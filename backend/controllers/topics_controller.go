package controllers

import (
	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TopicsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Log    *utils.Logger
	Topics *services.TopicService
}

func NewTopicsController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *TopicsController {
	return &TopicsController{
		DB:     db,
		Cfg:    cfg,
		Log:    logger,
		Topics: services.NewTopicService(db, location(cfg)),
	}
}

// ListTopics godoc
// @Summary List topics
// @Description Returns topics with their resources and latest progress update
// @Tags topics
// @Produce json
// @Param category query string false "Filter by category"
// @Param sortBy query string false "Sort field (default updatedAt)"
// @Param sortOrder query string false "asc or desc (default desc)"
// @Success 200 {array} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Router /topics [get]
func (tc *TopicsController) ListTopics(c *fiber.Ctx) error {
	topics, err := tc.Topics.List(c.UserContext(), services.TopicFilter{
		Category:  c.Query("category"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		return respondError(c, tc.Log, err, "Failed to fetch topics")
	}
	return utils.OK(c, topics)
}

// GetTopic godoc
// @Summary Get topic
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 404 {object} utils.ErrorResponse
// @Router /topics/{id} [get]
func (tc *TopicsController) GetTopic(c *fiber.Ctx) error {
	topic, err := tc.Topics.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, tc.Log, err, "Failed to fetch topic")
	}
	return utils.OK(c, topic)
}

// CreateTopic godoc
// @Summary Create topic
// @Tags topics
// @Accept json
// @Produce json
// @Success 201 {object} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Router /topics [post]
func (tc *TopicsController) CreateTopic(c *fiber.Ctx) error {
	var in services.CreateTopicInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	topic, err := tc.Topics.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, tc.Log, err, "Failed to create topic")
	}
	return utils.Created(c, topic)
}

// UpdateTopic godoc
// @Summary Update topic
// @Tags topics
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /topics/{id} [put]
func (tc *TopicsController) UpdateTopic(c *fiber.Ctx) error {
	var in services.UpdateTopicInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	topic, err := tc.Topics.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, tc.Log, err, "Failed to update topic")
	}
	return utils.OK(c, topic)
}

// DeleteTopic godoc
// @Summary Delete topic with its resources and progress updates
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} utils.DeletedResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /topics/{id} [delete]
func (tc *TopicsController) DeleteTopic(c *fiber.Ctx) error {
	if err := tc.Topics.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, tc.Log, err, "Failed to delete topic")
	}
	return utils.Deleted(c)
}
