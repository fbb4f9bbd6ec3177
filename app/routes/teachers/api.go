package teachers

import (
	"database/sql"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetTeachersAPI(c *fiber.Ctx, db *sql.DB) error {
	teachers, err := database.GetTeachers(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teachers")
	}
	return c.JSON(fiber.Map{"success": true, "teachers": teachers})
}

func GetTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	teacher, err := database.GetTeacherByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}
	return c.JSON(fiber.Map{"success": true, "teacher": teacher})
}

type TeacherRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Specialty *string `json:"specialty,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func CreateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	teacher := &models.Teacher{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Specialty: req.Specialty,
	}
	if err := database.CreateTeacher(db, teacher); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create teacher")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

func UpdateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	teacher, err := database.GetTeacherByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	teacher.FirstName = req.FirstName
	teacher.LastName = req.LastName
	teacher.Phone = req.Phone
	teacher.Email = req.Email
	teacher.Specialty = req.Specialty
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := database.UpdateTeacher(db, teacher); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update teacher")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Teacher updated successfully", "teacher": teacher})
}

func DeleteTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteTeacher(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete teacher")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Teacher deleted successfully"})
}
