package controllers

import (
	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Log       *utils.Logger
	Dashboard *services.DashboardService
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *DashboardController {
	return &DashboardController{
		DB:        db,
		Cfg:       cfg,
		Log:       logger,
		Dashboard: services.NewDashboardService(db, services.NewActivityService(db), location(cfg)),
	}
}

// GetDashboard godoc
// @Summary Dashboard summary
// @Description Totals, resources by status, recent topics and progress, and the current streak
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.Dashboard
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	summary, err := dc.Dashboard.Summary(c.UserContext())
	if err != nil {
		return respondError(c, dc.Log, err, "Failed to build dashboard")
	}
	return utils.OK(c, summary)
}
