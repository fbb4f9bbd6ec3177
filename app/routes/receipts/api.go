package receipts

import (
	"database/sql"
	"time"

	"annur-center/app/database"
	"annur-center/app/models"
	"annur-center/app/services"

	"github.com/gofiber/fiber/v2"
)

func parseReceiptType(s string) (models.ReceiptType, bool) {
	switch models.ReceiptType(s) {
	case models.ReceiptTypePayment, models.ReceiptTypeDonation:
		return models.ReceiptType(s), true
	}
	return "", false
}

// NextReceiptNumberAPI allocates a receipt number outside a payment flow,
// e.g. for a manually written receipt.
func NextReceiptNumberAPI(c *fiber.Ctx, db *sql.DB) error {
	type NextRequest struct {
		ReceiptType string `json:"receipt_type"`
	}

	var req NextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	receiptType, ok := parseReceiptType(req.ReceiptType)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "receipt_type must be PAYMENT or DONATION")
	}

	// The allocation must commit atomically with the pointer move, so a
	// short transaction wraps the single issue.
	tx, err := db.Begin()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to allocate receipt number")
	}
	defer tx.Rollback()

	issue, err := services.NextReceiptNumber(tx, receiptType, time.Now().Year())
	if err != nil {
		if err == services.ErrReceiptBookExhausted {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Receipt book exhausted; open a new book first")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to allocate receipt number")
	}
	if err := tx.Commit(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to allocate receipt number")
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"receipt_number": issue.ReceiptNumber,
		"book_id":        issue.BookID,
		"year":           issue.Year,
	})
}

func GetReceiptBookStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	year := c.QueryInt("year", 0)
	stats, err := services.GetReceiptBookStats(db, year)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch receipt book stats")
	}
	return c.JSON(fiber.Map{"success": true, "books": stats})
}

// CreateReceiptBookAPI opens the next numbering range for a type/year,
// typically after the active book is exhausted.
func CreateReceiptBookAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateRequest struct {
		ReceiptType string `json:"receipt_type"`
		Year        int    `json:"year"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	receiptType, ok := parseReceiptType(req.ReceiptType)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "receipt_type must be PAYMENT or DONATION")
	}
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	book, err := database.CreateReceiptBook(db, receiptType, year)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create receipt book")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Receipt book created successfully",
		"book":    book,
	})
}
