package services

import (
	"testing"
	"time"

	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestAcademicYearFor(t *testing.T) {
	// September start: the year rolls over at the start month
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2025, time.September), 9))
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2025, time.December), 9))
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2026, time.January), 9))
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2026, time.August), 9))
	assert.Equal(t, "2026-2027", AcademicYearFor(date(2026, time.September), 9))

	// January start collapses to the calendar year
	assert.Equal(t, "2026-2027", AcademicYearFor(date(2026, time.March), 1))

	// out-of-range start months fall back to September
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2026, time.March), 0))
	assert.Equal(t, "2025-2026", AcademicYearFor(date(2026, time.March), 13))
}

func TestCurrentPeriod(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	year, month, err := CurrentPeriod(db)
	require.NoError(t, err)
	assert.Equal(t, int(now.Month()), month)
	assert.Equal(t, AcademicYearFor(now, 9), year)

	// a reconfigured start month changes the resolved year
	setSetting(t, db, models.SettingYearStartMonth, "1")
	year, _, err = CurrentPeriod(db)
	require.NoError(t, err)
	assert.Equal(t, AcademicYearFor(now, 1), year)
}
