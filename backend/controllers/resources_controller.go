package controllers

import (
	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResourcesController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Log       *utils.Logger
	Resources *services.ResourceService
}

func NewResourcesController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *ResourcesController {
	return &ResourcesController{
		DB:        db,
		Cfg:       cfg,
		Log:       logger,
		Resources: services.NewResourceService(db),
	}
}

// ListResources godoc
// @Summary List resources
// @Tags resources
// @Produce json
// @Param topicId query string false "Filter by topic"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Resource
// @Router /resources [get]
func (rc *ResourcesController) ListResources(c *fiber.Ctx) error {
	resources, err := rc.Resources.List(c.UserContext(), services.ResourceFilter{
		TopicID: c.Query("topicId"),
		Status:  c.Query("status"),
	})
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to fetch resources")
	}
	return utils.OK(c, resources)
}

// GetResource godoc
// @Summary Get resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} models.Resource
// @Failure 404 {object} utils.ErrorResponse
// @Router /resources/{id} [get]
func (rc *ResourcesController) GetResource(c *fiber.Ctx) error {
	resource, err := rc.Resources.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to fetch resource")
	}
	return utils.OK(c, resource)
}

// CreateResource godoc
// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Success 201 {object} models.Resource
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /resources [post]
func (rc *ResourcesController) CreateResource(c *fiber.Ctx) error {
	var in services.CreateResourceInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	resource, err := rc.Resources.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to create resource")
	}
	return utils.Created(c, resource)
}

// UpdateResource godoc
// @Summary Update resource
// @Description A status change is recorded as status_changed in the activity log
// @Tags resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} models.Resource
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /resources/{id} [put]
func (rc *ResourcesController) UpdateResource(c *fiber.Ctx) error {
	var in services.UpdateResourceInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	resource, err := rc.Resources.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to update resource")
	}
	return utils.OK(c, resource)
}

// DeleteResource godoc
// @Summary Delete resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} utils.DeletedResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /resources/{id} [delete]
func (rc *ResourcesController) DeleteResource(c *fiber.Ctx) error {
	if err := rc.Resources.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, rc.Log, err, "Failed to delete resource")
	}
	return utils.Deleted(c)
}

// ImportResources godoc
// @Summary Import resources from a spreadsheet
// @Description Creates one resource per row of the first sheet of an .xlsx file
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Topic ID"
// @Param file formData file true "Workbook with a header row (title, url, type, status, notes, order)"
// @Success 201 {object} services.ImportResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /topics/{id}/resources/import [post]
func (rc *ResourcesController) ImportResources(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "A spreadsheet must be uploaded in the \"file\" field")
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to read upload")
	}
	defer file.Close()

	result, err := rc.Resources.ImportSpreadsheet(c.UserContext(), c.Params("id"), file)
	if err != nil {
		return respondError(c, rc.Log, err, "Failed to import resources")
	}
	return utils.Created(c, result)
}
