package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"annur-center/app/database"
	"annur-center/app/models"

	"github.com/shopspring/decimal"
)

// ErrAnnualFeeNotConfigured is returned when annual generation runs
// before the annual fee setting has been entered.
var ErrAnnualFeeNotConfigured = errors.New("annual fee setting is not configured")

// monthlyChargeAmount computes (base + surcharge) reduced by the
// student's discount percentage, rounded to two decimal places.
func monthlyChargeAmount(base, surcharge, discountPct float64) float64 {
	gross := decimal.NewFromFloat(base).Add(decimal.NewFromFloat(surcharge))
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discountPct).Div(decimal.NewFromInt(100)))
	return gross.Mul(factor).Round(2).InexactFloat64()
}

// GenerateAnnualCharges inserts the annual fee charge for every billable
// student who does not already have one for the year. The whole run is
// one transaction. Returns the number of charges written.
func GenerateAnnualCharges(db *sql.DB, academicYear string) (int, error) {
	annualFee, err := database.GetSettingFloat(db, models.SettingAnnualFee)
	if err != nil {
		return 0, fmt.Errorf("failed to read annual fee: %v", err)
	}
	if annualFee <= 0 {
		return 0, ErrAnnualFeeNotConfigured
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	students, err := database.GetBillableStudents(tx)
	if err != nil {
		return 0, fmt.Errorf("failed to list students: %v", err)
	}

	generated := 0
	for _, student := range students {
		exists, err := database.ChargeExists(tx, student.ID, models.ChargeTypeAnnual, academicYear, 0)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}
		if err := database.InsertCharge(tx, student.ID, models.ChargeTypeAnnual, academicYear, 0, annualFee); err != nil {
			return 0, err
		}
		generated++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Printf("Generated %d annual charges for %s", generated, academicYear)
	return generated, nil
}

// GenerateMonthlyCharges inserts one monthly charge per billable student
// for (academicYear, month). Existing charges for the period are skipped
// unless force is set, in which case they are deleted and recomputed.
// The whole run is one transaction.
func GenerateMonthlyCharges(db *sql.DB, academicYear string, month int, force bool) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("invalid month %d", month)
	}

	standardFee, err := database.GetSettingFloat(db, models.SettingStandardMonthlyFee)
	if err != nil {
		return 0, fmt.Errorf("failed to read standard monthly fee: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	students, err := database.GetBillableStudents(tx)
	if err != nil {
		return 0, fmt.Errorf("failed to list students: %v", err)
	}

	generated := 0
	for _, student := range students {
		wrote, err := generateMonthlyChargeTx(tx, student, standardFee, academicYear, month, force)
		if err != nil {
			return 0, err
		}
		if wrote {
			generated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Printf("Generated %d monthly charges for %s month %d (force=%v)", generated, academicYear, month, force)
	return generated, nil
}

// generateMonthlyChargeTx writes one student's monthly charge inside the
// caller's transaction. A student with no class enrollments still gets
// the standard fee: the base is not conditioned on enrollment.
func generateMonthlyChargeTx(tx *sql.Tx, student database.BillableStudent, standardFee float64, academicYear string, month int, force bool) (bool, error) {
	exists, err := database.ChargeExists(tx, student.ID, models.ChargeTypeMonthly, academicYear, month)
	if err != nil {
		return false, err
	}
	if exists && !force {
		return false, nil
	}
	if exists {
		// Forced regeneration discards the old row together with any
		// partial payment that was allocated to it.
		if err := database.DeleteChargesForPeriod(tx, student.ID, models.ChargeTypeMonthly, academicYear, month); err != nil {
			return false, err
		}
	}

	surcharge, err := database.SpecialClassSurcharge(tx, student.ID)
	if err != nil {
		return false, err
	}

	amount := monthlyChargeAmount(standardFee, surcharge, student.DiscountPercentage)
	if err := database.InsertCharge(tx, student.ID, models.ChargeTypeMonthly, academicYear, month, amount); err != nil {
		return false, err
	}
	return true, nil
}

// GenerateAllCharges runs annual generation for the year followed by
// monthly generation for the given month.
func GenerateAllCharges(db *sql.DB, academicYear string, month int, force bool) (int, error) {
	annual, err := GenerateAnnualCharges(db, academicYear)
	if err != nil && err != ErrAnnualFeeNotConfigured {
		return 0, err
	}
	monthly, err := GenerateMonthlyCharges(db, academicYear, month, force)
	if err != nil {
		return annual, err
	}
	return annual + monthly, nil
}
