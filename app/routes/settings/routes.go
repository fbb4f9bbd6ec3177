package settings

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes sets up the settings routes
func SetupSettingsRoutes(app *fiber.App) {
	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, config.GetDB())
	})

	api.Put("/", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return UpdateSettingsAPI(c, config.GetDB())
	})
}
