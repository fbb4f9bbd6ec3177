package services

import (
	"testing"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentAllocatesOldestFirst(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 9, 50))
	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 10, 50))

	result, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        70,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)
	require.Len(t, result.Allocations, 2)

	assert.Equal(t, 50.0, result.Allocations[0].Applied)
	assert.Equal(t, models.ChargeStatusPaid, result.Allocations[0].Status)
	assert.Equal(t, 20.0, result.Allocations[1].Applied)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, result.Allocations[1].Status)
	assert.Equal(t, 0.0, result.Credit)

	outstanding, err := database.GetOutstandingCharges(db, student.ID)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	require.NotNil(t, outstanding[0].Month)
	assert.Equal(t, 10, *outstanding[0].Month)
	assert.Equal(t, 30.0, outstanding[0].Outstanding())
}

func TestRecordPaymentAllocatesAnnualBeforeMonthly(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 9, 50))
	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeAnnual, "2025-2026", 0, 100))

	result, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        100,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	assert.Nil(t, result.Allocations[0].Month)
	assert.Equal(t, models.ChargeStatusPaid, result.Allocations[0].Status)
}

func TestRecordPaymentSurplusBecomesCredit(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)
	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 9, 50))

	result, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        80,
		PaymentMethod: models.PaymentMethodMobileMoney,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, result.Credit)

	balance, err := database.GetStudentCreditBalance(db, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, balance)
}

func TestRecordPaymentWithNoOutstandingCharges(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	result, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        40,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, 40.0, result.Credit)
}

func TestRecordPaymentDuplicateReceiptLeavesNothingBehind(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)
	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 9, 50))

	_, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        20,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)

	_, err = RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        30,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	assert.ErrorIs(t, err, ErrDuplicateReceipt)

	// the rejected payment must not have touched anything
	payments, err := database.GetPayments(db, database.PaymentFilters{StudentID: student.ID})
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	outstanding, err := database.GetOutstandingCharges(db, student.ID)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, 20.0, outstanding[0].AmountPaid)
}

func TestRecordPaymentIssuesReceiptWhenBlank(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	first, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        10,
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^RCP-\d{4}-0001$`, first.Payment.ReceiptNumber)

	second, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        10,
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^RCP-\d{4}-0002$`, second.Payment.ReceiptNumber)
}

func TestRecordPaymentRejectsBadInput(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	_, err := RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        -5,
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.Error(t, err)

	_, err = RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        10,
		PaymentMethod: "barter",
	})
	assert.Error(t, err)

	_, err = RecordPayment(db, RecordPaymentInput{
		StudentID:     "no-such-student",
		Amount:        10,
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.EqualError(t, err, "student not found")
}

func TestRecordPaymentRollsBackOnMidTransactionFailure(t *testing.T) {
	db := openTestDB(t)
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)
	require.NoError(t, database.InsertCharge(db, student.ID, models.ChargeTypeMonthly, "2025-2026", 9, 50))

	// break the credit insert so the transaction fails after the payment
	// row and the allocation update have been written
	_, err := db.Exec(`DROP TABLE student_credits`)
	require.NoError(t, err)

	_, err = RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        80,
		PaymentMethod: models.PaymentMethodCash,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.Error(t, err)

	// nothing from the failed attempt survives
	payments, err := database.GetPayments(db, database.PaymentFilters{StudentID: student.ID})
	require.NoError(t, err)
	assert.Empty(t, payments)

	outstanding, err := database.GetOutstandingCharges(db, student.ID)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, 0.0, outstanding[0].AmountPaid)
	assert.Equal(t, models.ChargeStatusUnpaid, outstanding[0].Status)
}

func TestRecordPaymentSettlesBalanceExactly(t *testing.T) {
	db := openTestDB(t)
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)
	tajweed := createClass(t, db, "Tajweed", models.ClassFeeSpecial, 20)
	enroll(t, db, tajweed.ID, student.ID)

	_, err := GenerateMonthlyCharges(db, "2025-2026", 9, false)
	require.NoError(t, err)

	_, err = RecordPayment(db, RecordPaymentInput{
		StudentID:     student.ID,
		Amount:        70,
		PaymentMethod: models.PaymentMethodBankTransfer,
		ReceiptNumber: "RCP-2025-0001",
	})
	require.NoError(t, err)

	status, err := database.GetStudentFeeStatus(db, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, status.TotalDue)
	assert.Equal(t, 70.0, status.TotalPaid)
	assert.Equal(t, 0.0, status.Balance)
	require.Len(t, status.Charges, 1)
	assert.Equal(t, models.ChargeStatusPaid, status.Charges[0].Status)
}
