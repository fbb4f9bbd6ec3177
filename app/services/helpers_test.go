package services

import (
	"database/sql"
	"testing"

	"annur-center/app/database"
	"annur-center/app/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// openTestDB gives each test a fresh in-memory database with the full
// schema applied. MaxOpenConns(1) keeps every statement on the same
// connection, which an in-memory sqlite database requires.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func setSetting(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	require.NoError(t, database.SetSetting(db, key, value))
}

func createStudent(t *testing.T, db *sql.DB, firstName string, category models.FeeCategory, discount float64) *models.Student {
	t.Helper()
	s := &models.Student{
		FirstName:          firstName,
		LastName:           "Test",
		FeeCategory:        category,
		DiscountPercentage: discount,
	}
	require.NoError(t, database.CreateStudent(db, s))
	return s
}

func createClass(t *testing.T, db *sql.DB, name string, feeType models.ClassFeeType, monthlyFee float64) *models.Class {
	t.Helper()
	c := &models.Class{
		Name:       name,
		FeeType:    feeType,
		MonthlyFee: monthlyFee,
	}
	require.NoError(t, database.CreateClass(db, c))
	return c
}

func enroll(t *testing.T, db *sql.DB, classID string, studentIDs ...string) {
	t.Helper()
	_, err := database.ReplaceEnrollments(db, classID, studentIDs)
	require.NoError(t, err)
}

func chargesFor(t *testing.T, db *sql.DB, studentID string) []*models.FeeCharge {
	t.Helper()
	charges, err := database.GetCharges(db, database.ChargeFilters{StudentID: studentID})
	require.NoError(t, err)
	return charges
}
