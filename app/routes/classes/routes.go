package classes

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

// SetupClassesRoutes sets up the classes routes
func SetupClassesRoutes(app *fiber.App, guard *services.RegenerationGuard) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetClassAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateClassAPI(c, config.GetDB())
	})

	api.Delete("/:id", auth.RequireRole("admin"), func(c *fiber.Ctx) error {
		return DeleteClassAPI(c, config.GetDB())
	})

	api.Get("/:id/enrollments", func(c *fiber.Ctx) error {
		return GetEnrollmentsAPI(c, config.GetDB())
	})

	api.Put("/:id/enrollments", func(c *fiber.Ctx) error {
		return ReplaceEnrollmentsAPI(c, config.GetDB(), guard)
	})
}
