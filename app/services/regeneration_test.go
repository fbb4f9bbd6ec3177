package services

import (
	"database/sql"
	"sync"
	"testing"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerationGuardSerializesPerStudent(t *testing.T) {
	guard := NewRegenerationGuard()

	require.True(t, guard.TryAcquire("s1"))
	assert.False(t, guard.TryAcquire("s1"))
	// a different student is unaffected
	assert.True(t, guard.TryAcquire("s2"))

	guard.Release("s1")
	assert.True(t, guard.TryAcquire("s1"))

	guard.Reset()
	assert.True(t, guard.TryAcquire("s1"))
	assert.True(t, guard.TryAcquire("s2"))
}

func TestRegenerationGuardUnderContention(t *testing.T) {
	guard := NewRegenerationGuard()

	var wg sync.WaitGroup
	wins := make(chan string, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.TryAcquire("s1") {
				wins <- "s1"
			}
		}()
	}
	wg.Wait()
	close(wins)

	// exactly one goroutine may hold the student at a time
	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)

	guard.Release("s1")
	assert.True(t, guard.TryAcquire("s1"))
}

func TestTriggerChargeRegenerationForStudent(t *testing.T) {
	db := openTestDB(t)
	guard := NewRegenerationGuard()
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	result, err := TriggerChargeRegenerationForStudent(db, guard, student.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyInProgress)
	assert.Equal(t, 1, result.ChargesGenerated)

	charges := chargesFor(t, db, student.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 50.0, charges[0].Amount)

	// enroll in a special class and regenerate: the existing charge for
	// the period is replaced with the recomputed amount
	tajweed := createClass(t, db, "Tajweed", models.ClassFeeSpecial, 30)
	enroll(t, db, tajweed.ID, student.ID)

	result, err = TriggerChargeRegenerationForStudent(db, guard, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ChargesGenerated)

	charges = chargesFor(t, db, student.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 80.0, charges[0].Amount)
}

func TestTriggerChargeRegenerationWhileBusy(t *testing.T) {
	db := openTestDB(t)
	guard := NewRegenerationGuard()
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")
	student := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)

	require.True(t, guard.TryAcquire(student.ID))

	result, err := TriggerChargeRegenerationForStudent(db, guard, student.ID)
	require.NoError(t, err)
	assert.True(t, result.AlreadyInProgress)
	assert.Empty(t, chargesFor(t, db, student.ID))

	// the losing call must not have released the holder's reservation
	assert.False(t, guard.TryAcquire(student.ID))
	guard.Release(student.ID)

	result, err = TriggerChargeRegenerationForStudent(db, guard, student.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyInProgress)
	assert.Equal(t, 1, result.ChargesGenerated)
}

func TestTriggerChargeRegenerationRejectsBadStudents(t *testing.T) {
	db := openTestDB(t)
	guard := NewRegenerationGuard()
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")

	_, err := TriggerChargeRegenerationForStudent(db, guard, "no-such-student")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	deleted := createStudent(t, db, "Bilal", models.FeeCategoryPayable, 0)
	require.NoError(t, database.DeleteStudent(db, deleted.ID))
	_, err = TriggerChargeRegenerationForStudent(db, guard, deleted.ID)
	assert.ErrorIs(t, err, ErrStudentNotActive)
}

func TestTriggerChargeRegenerationSkipsExemptStudents(t *testing.T) {
	db := openTestDB(t)
	guard := NewRegenerationGuard()
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")
	student := createStudent(t, db, "Amina", models.FeeCategoryExempt, 0)

	result, err := TriggerChargeRegenerationForStudent(db, guard, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChargesGenerated)
	assert.Empty(t, chargesFor(t, db, student.ID))
}

func TestRefreshAllStudentCharges(t *testing.T) {
	db := openTestDB(t)
	guard := NewRegenerationGuard()
	setSetting(t, db, models.SettingStandardMonthlyFee, "50")

	stale := createStudent(t, db, "Amina", models.FeeCategoryPayable, 0)
	fresh := createStudent(t, db, "Bilal", models.FeeCategoryPayable, 0)

	year, month, err := CurrentPeriod(db)
	require.NoError(t, err)
	generated, err := GenerateMonthlyCharges(db, year, month, false)
	require.NoError(t, err)
	require.Equal(t, 2, generated)

	// an enrollment change after generation makes the charge stale
	tajweed := createClass(t, db, "Tajweed", models.ClassFeeSpecial, 30)
	enroll(t, db, tajweed.ID, stale.ID)

	report, err := RefreshAllStudentCharges(db, guard, year)
	require.NoError(t, err)
	assert.Equal(t, 1, report.StudentsProcessed)
	assert.Equal(t, 1, report.ChargesGenerated)
	assert.Empty(t, report.Failed)

	charges := chargesFor(t, db, stale.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 80.0, charges[0].Amount)

	charges = chargesFor(t, db, fresh.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 50.0, charges[0].Amount)
}
