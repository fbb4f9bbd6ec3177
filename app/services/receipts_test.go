package services

import (
	"fmt"
	"testing"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReceiptNumberOpensFirstBook(t *testing.T) {
	db := openTestDB(t)

	issue, err := NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2026-0001", issue.ReceiptNumber)

	issue, err = NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2026-0002", issue.ReceiptNumber)

	book, err := database.GetActiveReceiptBook(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, 1, book.StartNumber)
	assert.Equal(t, 3, book.CurrentNumber)
}

func TestNextReceiptNumberSeparatesTypesAndYears(t *testing.T) {
	db := openTestDB(t)

	payment, err := NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	donation, err := NextReceiptNumber(db, models.ReceiptTypeDonation, 2026)
	require.NoError(t, err)
	lastYear, err := NextReceiptNumber(db, models.ReceiptTypePayment, 2025)
	require.NoError(t, err)

	assert.Equal(t, "RCP-2026-0001", payment.ReceiptNumber)
	assert.Equal(t, "DON-2026-0001", donation.ReceiptNumber)
	assert.Equal(t, "RCP-2025-0001", lastYear.ReceiptNumber)

	_, err = NextReceiptNumber(db, models.ReceiptType("INVOICE"), 2026)
	assert.Error(t, err)
}

func TestNextReceiptNumberExhaustion(t *testing.T) {
	db := openTestDB(t)

	book, err := database.CreateReceiptBook(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE receipt_books SET current_number = end_number WHERE id = ?`, book.ID)
	require.NoError(t, err)

	_, err = NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
	assert.ErrorIs(t, err, ErrReceiptBookExhausted)

	// opening the next book resumes numbering after the spent range
	next, err := database.CreateReceiptBook(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	assert.Equal(t, book.EndNumber+1, next.StartNumber)

	issue, err := NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RCP-2026-%04d", next.StartNumber), issue.ReceiptNumber)
}

func TestGetReceiptBookStats(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 250; i++ {
		_, err := NextReceiptNumber(db, models.ReceiptTypePayment, 2026)
		require.NoError(t, err)
	}

	stats, err := GetReceiptBookStats(db, 2026)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, 250, stats[0].CurrentNumber-stats[0].StartNumber)
	assert.Equal(t, 25.0, stats[0].Utilization)
	assert.False(t, stats[0].Exhausted)
	assert.Equal(t, stats[0].EndNumber-stats[0].CurrentNumber, stats[0].Remaining)
}
