package payments

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes sets up the payments routes
func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, config.GetDB())
	})
}
