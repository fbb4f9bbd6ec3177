package charges

import (
	"database/sql"
	"regexp"

	"annur-center/app/database"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

func GetChargesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.ChargeFilters{
		StudentID:    c.Query("student_id"),
		Status:       c.Query("status"),
		AcademicYear: c.Query("academic_year"),
		ChargeType:   c.Query("charge_type"),
	}

	charges, err := database.GetCharges(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch charges")
	}
	return c.JSON(fiber.Map{"success": true, "charges": charges, "count": len(charges)})
}

func GenerateAnnualChargesAPI(c *fiber.Ctx, db *sql.DB) error {
	type GenerateRequest struct {
		AcademicYear string `json:"academic_year"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if !academicYearPattern.MatchString(req.AcademicYear) {
		return fiber.NewError(fiber.StatusBadRequest, "academic_year must be of the form YYYY-YYYY")
	}

	generated, err := services.GenerateAnnualCharges(db, req.AcademicYear)
	if err != nil {
		if err == services.ErrAnnualFeeNotConfigured {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate annual charges")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Annual charges generated successfully",
		"charges_generated": generated,
	})
}

func GenerateMonthlyChargesAPI(c *fiber.Ctx, db *sql.DB) error {
	type GenerateRequest struct {
		AcademicYear string `json:"academic_year"`
		Month        int    `json:"month"`
		Force        bool   `json:"force"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if !academicYearPattern.MatchString(req.AcademicYear) {
		return fiber.NewError(fiber.StatusBadRequest, "academic_year must be of the form YYYY-YYYY")
	}
	if req.Month < 1 || req.Month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}

	generated, err := services.GenerateMonthlyCharges(db, req.AcademicYear, req.Month, req.Force)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate monthly charges")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Monthly charges generated successfully",
		"charges_generated": generated,
	})
}

func GenerateAllChargesAPI(c *fiber.Ctx, db *sql.DB) error {
	type GenerateRequest struct {
		AcademicYear string `json:"academic_year"`
		Force        bool   `json:"force"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if !academicYearPattern.MatchString(req.AcademicYear) {
		return fiber.NewError(fiber.StatusBadRequest, "academic_year must be of the form YYYY-YYYY")
	}

	_, month, err := services.CurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}

	generated, err := services.GenerateAllCharges(db, req.AcademicYear, month, req.Force)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate charges")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Charges generated successfully",
		"charges_generated": generated,
	})
}

func RefreshAllChargesAPI(c *fiber.Ctx, db *sql.DB, guard *services.RegenerationGuard) error {
	type RefreshRequest struct {
		AcademicYear string `json:"academic_year"`
	}

	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if !academicYearPattern.MatchString(req.AcademicYear) {
		return fiber.NewError(fiber.StatusBadRequest, "academic_year must be of the form YYYY-YYYY")
	}

	report, err := services.RefreshAllStudentCharges(db, guard, req.AcademicYear)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to refresh charges")
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"students_processed": report.StudentsProcessed,
		"charges_generated":  report.ChargesGenerated,
		"failed_results":     report.Failed,
	})
}
