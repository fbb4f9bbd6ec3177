package database

import (
	"database/sql"
	"testing"

	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClass(t *testing.T, db *sql.DB, name string, feeType models.ClassFeeType, fee float64) *models.Class {
	t.Helper()
	c := &models.Class{Name: name, FeeType: feeType, MonthlyFee: fee}
	require.NoError(t, CreateClass(db, c))
	return c
}

func TestReplaceEnrollments(t *testing.T) {
	db := openTestDB(t)
	class := seedClass(t, db, "Tajweed", models.ClassFeeSpecial, 30)

	a := seedStudent(t, db, "Amina", "Diallo", models.FeeCategoryPayable)
	b := seedStudent(t, db, "Bilal", "Traore", models.FeeCategoryPayable)
	c := seedStudent(t, db, "Cherif", "Keita", models.FeeCategoryPayable)

	affected, err := ReplaceEnrollments(db, class.ID, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, affected)

	// swapping b for c touches the kept, removed and added students
	affected, err = ReplaceEnrollments(db, class.ID, []string{a.ID, c.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID, c.ID}, affected)

	enrollments, err := GetEnrollmentsByClass(db, class.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)

	// emptying the roster reports everyone removed
	affected, err = ReplaceEnrollments(db, class.ID, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, c.ID}, affected)
}

func TestSpecialClassSurcharge(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, "Amina", "Diallo", models.FeeCategoryPayable)

	tajweed := seedClass(t, db, "Tajweed", models.ClassFeeSpecial, 30)
	tahfiz := seedClass(t, db, "Tahfiz", models.ClassFeeSpecial, 20)
	standard := seedClass(t, db, "Memorization", models.ClassFeeStandard, 15)

	surcharge, err := SpecialClassSurcharge(db, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, surcharge)

	_, err = ReplaceEnrollments(db, tajweed.ID, []string{student.ID})
	require.NoError(t, err)
	_, err = ReplaceEnrollments(db, tahfiz.ID, []string{student.ID})
	require.NoError(t, err)
	_, err = ReplaceEnrollments(db, standard.ID, []string{student.ID})
	require.NoError(t, err)

	// standard classes never contribute to the surcharge
	surcharge, err = SpecialClassSurcharge(db, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, surcharge)

	// deactivated special classes stop billing
	tahfiz.IsActive = false
	require.NoError(t, UpdateClass(db, tahfiz))
	surcharge, err = SpecialClassSurcharge(db, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, surcharge)
}

func TestDeleteClassRemovesRoster(t *testing.T) {
	db := openTestDB(t)
	class := seedClass(t, db, "Tajweed", models.ClassFeeSpecial, 30)
	student := seedStudent(t, db, "Amina", "Diallo", models.FeeCategoryPayable)

	_, err := ReplaceEnrollments(db, class.ID, []string{student.ID})
	require.NoError(t, err)

	require.NoError(t, DeleteClass(db, class.ID))

	enrollments, err := GetEnrollmentsByClass(db, class.ID)
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	assert.ErrorIs(t, DeleteClass(db, class.ID), sql.ErrNoRows)
}
