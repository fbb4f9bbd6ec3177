package teachers

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupTeachersRoutes sets up the teachers routes
func SetupTeachersRoutes(app *fiber.App) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetTeachersAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetTeacherAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateTeacherAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateTeacherAPI(c, config.GetDB())
	})

	api.Delete("/:id", auth.RequireRole("admin"), func(c *fiber.Ctx) error {
		return DeleteTeacherAPI(c, config.GetDB())
	})
}
