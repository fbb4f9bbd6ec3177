package payments

import (
	"database/sql"
	"log"
	"strings"

	"annur-center/app/database"
	"annur-center/app/models"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.PaymentFilters{
		StudentID:     c.Query("student_id"),
		PaymentMethod: c.Query("payment_method"),
		ReceiptSearch: c.Query("receipt"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
	}

	payments, err := database.GetPayments(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	return c.JSON(fiber.Map{"success": true, "payments": payments, "count": len(payments)})
}

func GetPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	payment, err := database.GetPaymentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	return c.JSON(fiber.Map{"success": true, "payment": payment})
}

func RecordPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var input services.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if user, ok := c.Locals("user").(*models.User); ok && input.RecordedBy == nil {
		input.RecordedBy = &user.ID
	}

	result, err := services.RecordPayment(db, input)
	if err != nil {
		switch {
		case err == services.ErrDuplicateReceipt:
			return fiber.NewError(fiber.StatusConflict, "Receipt number already used")
		case err == services.ErrReceiptBookExhausted:
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Receipt book exhausted; open a new book first")
		case strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must be"):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err.Error() == "student not found":
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		default:
			log.Printf("Failed to record payment: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"success":     true,
		"message":     "Payment recorded successfully",
		"payment":     result.Payment,
		"allocations": result.Allocations,
		"credit":      result.Credit,
	})
}
