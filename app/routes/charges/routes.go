package charges

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

// SetupChargesRoutes sets up the fee charge routes
func SetupChargesRoutes(app *fiber.App, guard *services.RegenerationGuard) {
	api := app.Group("/api/charges")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetChargesAPI(c, config.GetDB())
	})

	api.Post("/annual", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return GenerateAnnualChargesAPI(c, config.GetDB())
	})

	api.Post("/monthly", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return GenerateMonthlyChargesAPI(c, config.GetDB())
	})

	api.Post("/all", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return GenerateAllChargesAPI(c, config.GetDB())
	})

	api.Post("/refresh-all", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return RefreshAllChargesAPI(c, config.GetDB(), guard)
	})
}
