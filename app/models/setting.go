package models

import "time"

// Setting is a key/value row in the settings store.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys used by the billing core.
const (
	SettingAnnualFee          = "annual_fee"
	SettingStandardMonthlyFee = "standard_monthly_fee"
	SettingYearStartMonth     = "academic_year_start_month"
)
