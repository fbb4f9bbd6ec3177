package settings

import (
	"database/sql"
	"strconv"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	settings, err := database.GetAllSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch settings")
	}
	return c.JSON(fiber.Map{"success": true, "settings": settings})
}

// UpdateSettingsAPI accepts any subset of the known keys.
func UpdateSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	type SettingsRequest struct {
		AnnualFee          *float64 `json:"annual_fee,omitempty" validate:"omitempty,gte=0"`
		StandardMonthlyFee *float64 `json:"standard_monthly_fee,omitempty" validate:"omitempty,gte=0"`
		YearStartMonth     *int     `json:"academic_year_start_month,omitempty" validate:"omitempty,gte=1,lte=12"`
	}

	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.Validate(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.AnnualFee != nil {
		if err := database.SetSetting(db, models.SettingAnnualFee, strconv.FormatFloat(*req.AnnualFee, 'f', -1, 64)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update settings")
		}
	}
	if req.StandardMonthlyFee != nil {
		if err := database.SetSetting(db, models.SettingStandardMonthlyFee, strconv.FormatFloat(*req.StandardMonthlyFee, 'f', -1, 64)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update settings")
		}
	}
	if req.YearStartMonth != nil {
		if err := database.SetSetting(db, models.SettingYearStartMonth, strconv.Itoa(*req.YearStartMonth)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update settings")
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Settings updated successfully"})
}
