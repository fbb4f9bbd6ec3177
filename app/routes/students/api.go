package students

import (
	"database/sql"
	"time"

	"annur-center/app/database"
	"annur-center/app/models"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.StudentFilters{
		Search:      c.Query("search"),
		FeeCategory: c.Query("fee_category"),
		ClassID:     c.Query("class_id"),
		Gender:      c.Query("gender"),
		Status:      c.Query("status"),
		SortBy:      c.Query("sort_by", "matricule"),
		SortOrder:   c.Query("sort_order", "asc"),
		Limit:       c.QueryInt("limit", 50),
		Offset:      c.QueryInt("offset", 0),
	}

	students, total, err := database.GetStudents(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"students": students,
		"total":    total,
	})
}

func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return c.JSON(fiber.Map{"success": true, "student": student})
}

type StudentRequest struct {
	FirstName          string             `json:"first_name" validate:"required"`
	LastName           string             `json:"last_name" validate:"required"`
	Gender             *string            `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	DateOfBirth        *models.CustomDate `json:"date_of_birth,omitempty"`
	Address            *string            `json:"address,omitempty"`
	GuardianName       *string            `json:"guardian_name,omitempty"`
	GuardianPhone      *string            `json:"guardian_phone,omitempty"`
	FeeCategory        models.FeeCategory `json:"fee_category" validate:"required,oneof=payable exempt sponsored"`
	DiscountPercentage float64            `json:"discount_percentage" validate:"gte=0,lte=100"`
	SponsorName        *string            `json:"sponsor_name,omitempty"`
	SponsorPhone       *string            `json:"sponsor_phone,omitempty"`
	IsActive           *bool              `json:"is_active,omitempty"`
}

func (r *StudentRequest) apply(s *models.Student) {
	s.FirstName = r.FirstName
	s.LastName = r.LastName
	s.Gender = r.Gender
	if r.DateOfBirth != nil && !r.DateOfBirth.Time.IsZero() {
		dob := r.DateOfBirth.Time
		s.DateOfBirth = &dob
	}
	s.Address = r.Address
	s.GuardianName = r.GuardianName
	s.GuardianPhone = r.GuardianPhone
	s.FeeCategory = r.FeeCategory
	s.DiscountPercentage = r.DiscountPercentage
	s.SponsorName = r.SponsorName
	s.SponsorPhone = r.SponsorPhone
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := &models.Student{EnrolledAt: time.Now()}
	req.apply(student)
	student.IsActive = true

	if err := database.CreateStudent(db, student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Student created successfully",
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	req.apply(student)
	if err := database.UpdateStudent(db, student); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteStudent(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Student deleted successfully"})
}

func GetFeeStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	if _, err := database.GetStudentByID(db, studentID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	status, err := database.GetStudentFeeStatus(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee status")
	}
	return c.JSON(fiber.Map{"success": true, "fee_status": status})
}

func RefreshStudentChargesAPI(c *fiber.Ctx, db *sql.DB, guard *services.RegenerationGuard) error {
	result, err := services.TriggerChargeRegenerationForStudent(db, guard, c.Params("id"))
	if err != nil {
		if err == services.ErrStudentNotActive {
			return fiber.NewError(fiber.StatusConflict, "Student is not active")
		}
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to refresh charges")
	}

	message := "Charges refreshed successfully"
	if result.AlreadyInProgress {
		message = "Charge refresh already in progress"
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"message":           message,
		"charges_generated": result.ChargesGenerated,
		"in_progress":       result.AlreadyInProgress,
	})
}
