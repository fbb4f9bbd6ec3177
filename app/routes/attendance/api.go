package attendance

import (
	"database/sql"
	"time"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetClassAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("classId")
	dateStr := c.Params("date")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	records, err := database.GetAttendanceByClassAndDate(db, classID, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance records")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"attendance": records,
		"count":      len(records),
		"date":       dateStr,
		"class_id":   classID,
	})
}

func RecordClassAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	type EntryRequest struct {
		StudentID string `json:"student_id" validate:"required"`
		Status    string `json:"status" validate:"required,oneof=present absent late excused"`
	}
	type AttendanceRequest struct {
		Date    string         `json:"date" validate:"required"`
		Entries []EntryRequest `json:"entries" validate:"required,min=1,dive"`
	}

	classID := c.Params("classId")
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	if _, err := database.GetClassByID(db, classID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var recordedBy *string
	if user, ok := c.Locals("user").(*models.User); ok {
		recordedBy = &user.ID
	}

	entries := make([]database.AttendanceEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, database.AttendanceEntry{
			StudentID: e.StudentID,
			Status:    models.AttendanceStatus(e.Status),
		})
	}

	if err := database.RecordClassAttendance(db, classID, date, recordedBy, entries); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record attendance")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Attendance recorded successfully",
		"recorded": len(entries),
	})
}
