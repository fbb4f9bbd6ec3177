package students

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes sets up the students routes
func SetupStudentsRoutes(app *fiber.App, guard *services.RegenerationGuard) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetDB())
	})

	api.Delete("/:id", auth.RequireRole("admin"), func(c *fiber.Ctx) error {
		return DeleteStudentAPI(c, config.GetDB())
	})

	api.Get("/:id/fee-status", func(c *fiber.Ctx) error {
		return GetFeeStatusAPI(c, config.GetDB())
	})

	api.Post("/:id/refresh-charges", func(c *fiber.Ctx) error {
		return RefreshStudentChargesAPI(c, config.GetDB(), guard)
	})
}
