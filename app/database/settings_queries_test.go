package database

import (
	"testing"

	"annur-center/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	// migrations seed the start month
	month, err := GetSettingInt(db, models.SettingYearStartMonth, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, month)

	value, err := GetSetting(db, models.SettingAnnualFee)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	fee, err := GetSettingFloat(db, models.SettingAnnualFee)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)

	require.NoError(t, SetSetting(db, models.SettingAnnualFee, "150.50"))
	fee, err = GetSettingFloat(db, models.SettingAnnualFee)
	require.NoError(t, err)
	assert.Equal(t, 150.50, fee)

	// upsert overwrites
	require.NoError(t, SetSetting(db, models.SettingAnnualFee, "200"))
	fee, err = GetSettingFloat(db, models.SettingAnnualFee)
	require.NoError(t, err)
	assert.Equal(t, 200.0, fee)

	// garbage integers fall back
	require.NoError(t, SetSetting(db, models.SettingYearStartMonth, "soon"))
	month, err = GetSettingInt(db, models.SettingYearStartMonth, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, month)

	all, err := GetAllSettings(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
