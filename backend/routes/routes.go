package routes

import (
	"learntrack/backend/config"
	"learntrack/backend/controllers"
	"learntrack/backend/middleware"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *utils.Logger) {
	api := app.Group("/api")
	if cfg.AuthEnabled() {
		api.Use(middleware.AuthMiddleware(cfg))
	}

	// Topics routes
	topicsController := controllers.NewTopicsController(db, cfg, logger)
	topics := api.Group("/topics")
	topics.Get("/", topicsController.ListTopics)
	topics.Post("/", topicsController.CreateTopic)
	topics.Get("/:id", topicsController.GetTopic)
	topics.Put("/:id", topicsController.UpdateTopic)
	topics.Delete("/:id", topicsController.DeleteTopic)

	// Resources routes
	resourcesController := controllers.NewResourcesController(db, cfg, logger)
	resources := api.Group("/resources")
	resources.Get("/", resourcesController.ListResources)
	resources.Post("/", resourcesController.CreateResource)
	resources.Get("/:id", resourcesController.GetResource)
	resources.Put("/:id", resourcesController.UpdateResource)
	resources.Delete("/:id", resourcesController.DeleteResource)
	topics.Post("/:id/resources/import", resourcesController.ImportResources)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg, logger)
	progress := api.Group("/progress")
	progress.Get("/", progressController.GetProgress)
	progress.Post("/", progressController.CreateProgress)
	progress.Delete("/:id", progressController.DeleteProgress)

	// Activity and dashboard routes
	activityController := controllers.NewActivityController(db, cfg, logger)
	api.Get("/activity", activityController.GetActivity)

	dashboardController := controllers.NewDashboardController(db, cfg, logger)
	api.Get("/dashboard", dashboardController.GetDashboard)
}
