package classes

import (
	"database/sql"
	"log"

	"annur-center/app/database"
	"annur-center/app/models"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	includeInactive := c.Query("status") == "all"
	classes, err := database.GetClasses(db, includeInactive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}
	return c.JSON(fiber.Map{"success": true, "classes": classes})
}

func GetClassAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	return c.JSON(fiber.Map{"success": true, "class": class})
}

type ClassRequest struct {
	Name       string              `json:"name" validate:"required"`
	FeeType    models.ClassFeeType `json:"fee_type" validate:"required,oneof=standard special"`
	MonthlyFee float64             `json:"monthly_fee" validate:"gte=0"`
	TeacherID  *string             `json:"teacher_id,omitempty"`
	IsActive   *bool               `json:"is_active,omitempty"`
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.FeeType == models.ClassFeeStandard && req.MonthlyFee != 0 {
		return fiber.NewError(fiber.StatusBadRequest, "monthly_fee only applies to special classes")
	}

	class := &models.Class{
		Name:       req.Name,
		FeeType:    req.FeeType,
		MonthlyFee: req.MonthlyFee,
		TeacherID:  req.TeacherID,
	}
	if err := database.CreateClass(db, class); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Class created successfully",
		"class":   class,
	})
}

func UpdateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	class, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	class.Name = req.Name
	class.FeeType = req.FeeType
	class.MonthlyFee = req.MonthlyFee
	class.TeacherID = req.TeacherID
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := database.UpdateClass(db, class); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update class")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Class updated successfully", "class": class})
}

func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteClass(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Class deleted successfully"})
}

func GetEnrollmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	enrollments, err := database.GetEnrollmentsByClass(db, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"enrollments": enrollments,
		"count":       len(enrollments),
	})
}

// ReplaceEnrollmentsAPI replaces the class roster wholesale and then
// refreshes the current-period charge of every affected student so a
// special-class change is billed immediately.
func ReplaceEnrollmentsAPI(c *fiber.Ctx, db *sql.DB, guard *services.RegenerationGuard) error {
	type EnrollmentRequest struct {
		StudentIDs []string `json:"student_ids"`
	}

	classID := c.Params("id")
	var req EnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := database.GetClassByID(db, classID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	affected, err := database.ReplaceEnrollments(db, classID, req.StudentIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update enrollments")
	}

	regenerated := 0
	for _, studentID := range affected {
		result, err := services.TriggerChargeRegenerationForStudent(db, guard, studentID)
		if err != nil {
			// Roster change is already committed; log and keep going.
			log.Printf("Charge regeneration failed for student %s: %v", studentID, err)
			continue
		}
		regenerated += result.ChargesGenerated
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Enrollments updated successfully",
		"enrolled":          len(req.StudentIDs),
		"charges_refreshed": regenerated,
	})
}
