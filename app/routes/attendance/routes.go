package attendance

import (
	"annur-center/app/config"
	"annur-center/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAttendanceRoutes sets up the attendance routes
func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/class/:classId/:date", func(c *fiber.Ctx) error {
		return GetClassAttendanceAPI(c, config.GetDB())
	})

	api.Post("/class/:classId", func(c *fiber.Ctx) error {
		return RecordClassAttendanceAPI(c, config.GetDB())
	})
}
