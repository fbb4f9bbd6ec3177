package main

import (
	"log"

	"annur-center/app/config"
	"annur-center/app/database"
	"annur-center/app/routes/attendance"
	"annur-center/app/routes/auth"
	"annur-center/app/routes/charges"
	"annur-center/app/routes/classes"
	"annur-center/app/routes/dashboard"
	"annur-center/app/routes/payments"
	"annur-center/app/routes/receipts"
	"annur-center/app/routes/reports"
	"annur-center/app/routes/settings"
	"annur-center/app/routes/students"
	"annur-center/app/routes/teachers"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

// customErrorHandler keeps API errors in the same JSON envelope the
// handlers use.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Optional .env for local overrides
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	app := fiber.New(fiber.Config{
		AppName:      "An-Nur Center",
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://localhost:3000",
		AllowCredentials: true,
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// One guard serializes per-student charge regeneration across the
	// enrollment and refresh endpoints.
	guard := services.NewRegenerationGuard()

	auth.SetupAuthRoutes(app)
	students.SetupStudentsRoutes(app, guard)
	teachers.SetupTeachersRoutes(app)
	classes.SetupClassesRoutes(app, guard)
	charges.SetupChargesRoutes(app, guard)
	payments.SetupPaymentsRoutes(app)
	receipts.SetupReceiptsRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	settings.SetupSettingsRoutes(app)
	reports.SetupReportsRoutes(app)
	dashboard.SetupDashboardRoutes(app)

	port := config.GetPort()
	log.Printf("An-Nur Center listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
