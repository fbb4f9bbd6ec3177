package dashboard

import (
	"annur-center/app/config"
	"annur-center/app/database"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := database.GetDashboardStats(config.GetDB())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
		}
		return c.JSON(fiber.Map{"success": true, "stats": stats})
	})
}
