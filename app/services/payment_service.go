package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/shopspring/decimal"
)

// ErrDuplicateReceipt is returned when a payment is submitted with a
// receipt number that is already on file. Nothing is persisted.
var ErrDuplicateReceipt = errors.New("receipt number already used")

// RecordPaymentInput is the payload for recording a payment.
type RecordPaymentInput struct {
	StudentID     string               `json:"student_id" validate:"required"`
	Amount        float64              `json:"amount" validate:"required,gt=0"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash mobile_money bank_transfer cheque"`
	ReceiptNumber string               `json:"receipt_number"`
	SponsorName   *string              `json:"sponsor_name,omitempty"`
	SponsorPhone  *string              `json:"sponsor_phone,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	RecordedBy    *string              `json:"recorded_by,omitempty"`
}

// ChargeAllocation is one slice of a payment applied to a charge.
type ChargeAllocation struct {
	ChargeID     string              `json:"charge_id"`
	AcademicYear string              `json:"academic_year"`
	Month        *int                `json:"month,omitempty"`
	Applied      float64             `json:"applied"`
	Status       models.ChargeStatus `json:"status"`
}

// PaymentResult is the outcome of a recorded payment.
type PaymentResult struct {
	Payment     *models.Payment    `json:"payment"`
	Allocations []ChargeAllocation `json:"allocations"`
	Credit      float64            `json:"credit"`
}

// RecordPayment persists the payment and walks the student's outstanding
// charges oldest-first, applying the amount until it runs out. Surplus is
// written to the credit ledger. Everything happens in one transaction:
// either the payment, every allocation and any credit land together, or
// nothing does.
func RecordPayment(db *sql.DB, input RecordPaymentInput) (*PaymentResult, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	if _, err := database.GetStudentByID(db, input.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student not found")
		}
		return nil, fmt.Errorf("failed to load student: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	receiptNumber := input.ReceiptNumber
	if receiptNumber != "" {
		exists, err := database.ReceiptNumberExists(tx, receiptNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateReceipt
		}
	} else {
		issue, err := NextReceiptNumber(tx, models.ReceiptTypePayment, time.Now().Year())
		if err != nil {
			return nil, err
		}
		receiptNumber = issue.ReceiptNumber
	}

	payment := &models.Payment{
		StudentID:     input.StudentID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		ReceiptNumber: receiptNumber,
		SponsorName:   input.SponsorName,
		SponsorPhone:  input.SponsorPhone,
		Notes:         input.Notes,
		RecordedBy:    input.RecordedBy,
	}
	if err := database.InsertPayment(tx, payment); err != nil {
		return nil, err
	}

	charges, err := database.GetOutstandingCharges(tx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding charges: %v", err)
	}

	result := &PaymentResult{Payment: payment}
	remaining := decimal.NewFromFloat(input.Amount)
	for _, charge := range charges {
		if !remaining.IsPositive() {
			break
		}

		owed := decimal.NewFromFloat(charge.Amount).Sub(decimal.NewFromFloat(charge.AmountPaid))
		if !owed.IsPositive() {
			continue
		}

		applied := decimal.Min(remaining, owed)
		newPaid := decimal.NewFromFloat(charge.AmountPaid).Add(applied)

		status := models.ChargeStatusPartiallyPaid
		if newPaid.GreaterThanOrEqual(decimal.NewFromFloat(charge.Amount)) {
			status = models.ChargeStatusPaid
		}

		if err := database.UpdateChargeAllocation(tx, charge.ID, newPaid.InexactFloat64(), status); err != nil {
			return nil, err
		}

		result.Allocations = append(result.Allocations, ChargeAllocation{
			ChargeID:     charge.ID,
			AcademicYear: charge.AcademicYear,
			Month:        charge.Month,
			Applied:      applied.InexactFloat64(),
			Status:       status,
		})
		remaining = remaining.Sub(applied)
	}

	if remaining.IsPositive() {
		// Overpayment is kept, not discarded: it becomes credit for
		// future periods.
		if err := database.InsertStudentCredit(tx, input.StudentID, remaining.InexactFloat64(), payment.ID); err != nil {
			return nil, err
		}
		result.Credit = remaining.InexactFloat64()
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Printf("Recorded payment %s (%s) for student %s: %d allocations, %.2f credit",
		payment.ID, payment.ReceiptNumber, payment.StudentID, len(result.Allocations), result.Credit)
	return result, nil
}
