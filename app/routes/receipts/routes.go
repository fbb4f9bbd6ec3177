package receipts

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupReceiptsRoutes sets up the receipt book routes
func SetupReceiptsRoutes(app *fiber.App) {
	api := app.Group("/api/receipts")
	api.Use(auth.AuthMiddleware)

	api.Post("/next", func(c *fiber.Ctx) error {
		return NextReceiptNumberAPI(c, config.GetDB())
	})

	books := app.Group("/api/receipt-books")
	books.Use(auth.AuthMiddleware)

	books.Get("/stats", func(c *fiber.Ctx) error {
		return GetReceiptBookStatsAPI(c, config.GetDB())
	})

	books.Post("/", auth.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return CreateReceiptBookAPI(c, config.GetDB())
	})
}
