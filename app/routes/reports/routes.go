package reports

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupReportsRoutes sets up the financial reporting routes
func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)

	api.Get("/financial", func(c *fiber.Ctx) error {
		return GetFinancialReportAPI(c, config.GetDB())
	})

	api.Get("/financial/export", func(c *fiber.Ctx) error {
		return ExportFinancialReportAPI(c, config.GetDB())
	})
}
