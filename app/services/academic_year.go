package services

import (
	"fmt"
	"time"

	"annur-center/app/database"
	"annur-center/app/models"
)

// AcademicYearFor formats the academic year containing t as "YYYY-YYYY",
// given the month the fiscal year starts in.
func AcademicYearFor(t time.Time, startMonth int) string {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 9
	}
	year := t.Year()
	if int(t.Month()) >= startMonth {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// CurrentPeriod resolves the academic year and calendar month for "now"
// from the configured start month.
func CurrentPeriod(q database.Querier) (string, int, error) {
	startMonth, err := database.GetSettingInt(q, models.SettingYearStartMonth, 9)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read year start month: %v", err)
	}
	now := time.Now()
	return AcademicYearFor(now, startMonth), int(now.Month()), nil
}
