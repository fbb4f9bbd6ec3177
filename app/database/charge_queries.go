package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

// BillableStudent is the slice of student data the charge generator needs.
type BillableStudent struct {
	ID                 string
	DiscountPercentage float64
}

// GetBillableStudents returns active, non-deleted students whose fee
// category is payable or sponsored. Exempt students are never billed.
func GetBillableStudents(q Querier) ([]BillableStudent, error) {
	rows, err := q.Query(`SELECT id, discount_percentage FROM students
		WHERE fee_category IN ('payable', 'sponsored') AND is_active = 1 AND deleted_at IS NULL
		ORDER BY matricule ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []BillableStudent
	for rows.Next() {
		var s BillableStudent
		if err := rows.Scan(&s.ID, &s.DiscountPercentage); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ChargeExists reports whether a charge row exists for the given period.
// Pass month = 0 for annual charges.
func ChargeExists(q Querier, studentID string, chargeType models.ChargeType, academicYear string, month int) (bool, error) {
	query := `SELECT COUNT(*) FROM fee_charges
		WHERE student_id = ? AND charge_type = ? AND academic_year = ?`
	args := []interface{}{studentID, chargeType, academicYear}
	if month > 0 {
		query += ` AND month = ?`
		args = append(args, month)
	} else {
		query += ` AND month IS NULL`
	}

	var count int
	if err := q.QueryRow(query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteChargesForPeriod removes existing charge rows for a period ahead
// of a forced regeneration. Any partial payment recorded on the deleted
// rows is discarded with them.
func DeleteChargesForPeriod(q Querier, studentID string, chargeType models.ChargeType, academicYear string, month int) error {
	query := `DELETE FROM fee_charges
		WHERE student_id = ? AND charge_type = ? AND academic_year = ?`
	args := []interface{}{studentID, chargeType, academicYear}
	if month > 0 {
		query += ` AND month = ?`
		args = append(args, month)
	} else {
		query += ` AND month IS NULL`
	}

	_, err := q.Exec(query, args...)
	return err
}

// InsertCharge writes a fresh charge row with nothing paid against it.
func InsertCharge(q Querier, studentID string, chargeType models.ChargeType, academicYear string, month int, amount float64) error {
	now := time.Now()
	var m interface{}
	if month > 0 {
		m = month
	}
	_, err := q.Exec(`INSERT INTO fee_charges (id, student_id, charge_type, academic_year, month, amount, amount_paid, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, 'UNPAID', ?, ?)`,
		uuid.NewString(), studentID, chargeType, academicYear, m, amount, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert charge: %v", err)
	}
	return nil
}

// GetOutstandingCharges returns a student's unpaid and partially paid
// charges in deterministic allocation order: earliest academic year first,
// annual charges ahead of that year's monthly charges, then by month.
func GetOutstandingCharges(q Querier, studentID string) ([]*models.FeeCharge, error) {
	rows, err := q.Query(`SELECT id, student_id, charge_type, academic_year, month, amount, amount_paid, status, created_at, updated_at
		FROM fee_charges
		WHERE student_id = ? AND status IN ('UNPAID', 'PARTIALLY_PAID')
		ORDER BY academic_year ASC, month IS NOT NULL, month ASC, created_at ASC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCharges(rows)
}

func scanCharges(rows *sql.Rows) ([]*models.FeeCharge, error) {
	var charges []*models.FeeCharge
	for rows.Next() {
		fc := &models.FeeCharge{}
		err := rows.Scan(&fc.ID, &fc.StudentID, &fc.ChargeType, &fc.AcademicYear, &fc.Month,
			&fc.Amount, &fc.AmountPaid, &fc.Status, &fc.CreatedAt, &fc.UpdatedAt)
		if err != nil {
			return nil, err
		}
		charges = append(charges, fc)
	}
	return charges, rows.Err()
}

// UpdateChargeAllocation sets the running paid total and derived status
// after the allocator applies part of a payment.
func UpdateChargeAllocation(q Querier, chargeID string, amountPaid float64, status models.ChargeStatus) error {
	_, err := q.Exec(`UPDATE fee_charges SET amount_paid = ?, status = ?, updated_at = ? WHERE id = ?`,
		amountPaid, status, time.Now(), chargeID)
	if err != nil {
		return fmt.Errorf("failed to update charge: %v", err)
	}
	return nil
}

// ChargeFilters represents filtering options for the charge list.
type ChargeFilters struct {
	StudentID    string
	Status       string
	AcademicYear string
	ChargeType   string
}

func GetCharges(db *sql.DB, f ChargeFilters) ([]*models.FeeCharge, error) {
	cl := &clause{}
	if f.StudentID != "" {
		cl.add("fc.student_id = ?", f.StudentID)
	}
	if f.Status != "" {
		cl.add("fc.status = ?", strings.ToUpper(f.Status))
	}
	if f.AcademicYear != "" {
		cl.add("fc.academic_year = ?", f.AcademicYear)
	}
	if f.ChargeType != "" {
		cl.add("fc.charge_type = ?", strings.ToUpper(f.ChargeType))
	}

	query := `SELECT fc.id, fc.student_id, fc.charge_type, fc.academic_year, fc.month,
			  fc.amount, fc.amount_paid, fc.status, fc.created_at, fc.updated_at,
			  s.first_name || ' ' || s.last_name, s.matricule
			  FROM fee_charges fc
			  JOIN students s ON fc.student_id = s.id
			  WHERE s.deleted_at IS NULL` + cl.where() +
		` ORDER BY fc.academic_year DESC, fc.month DESC, s.matricule ASC`

	rows, err := db.Query(query, cl.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.FeeCharge
	for rows.Next() {
		fc := &models.FeeCharge{}
		err := rows.Scan(&fc.ID, &fc.StudentID, &fc.ChargeType, &fc.AcademicYear, &fc.Month,
			&fc.Amount, &fc.AmountPaid, &fc.Status, &fc.CreatedAt, &fc.UpdatedAt,
			&fc.StudentName, &fc.StudentMatricule)
		if err != nil {
			return nil, err
		}
		charges = append(charges, fc)
	}
	return charges, rows.Err()
}

// FeeStatus aggregates a student's billing position.
type FeeStatus struct {
	TotalDue      float64             `json:"total_due"`
	TotalPaid     float64             `json:"total_paid"`
	CreditBalance float64             `json:"credit_balance"`
	Balance       float64             `json:"balance"`
	Charges       []*models.FeeCharge `json:"charges"`
}

// GetStudentFeeStatus is a pure read across charge and credit rows.
func GetStudentFeeStatus(db *sql.DB, studentID string) (*FeeStatus, error) {
	status := &FeeStatus{}

	err := db.QueryRow(`SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(amount_paid), 0)
		FROM fee_charges WHERE student_id = ?`, studentID).
		Scan(&status.TotalDue, &status.TotalPaid)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_credits WHERE student_id = ?`, studentID).
		Scan(&status.CreditBalance)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT id, student_id, charge_type, academic_year, month, amount, amount_paid, status, created_at, updated_at
		FROM fee_charges WHERE student_id = ?
		ORDER BY academic_year ASC, month IS NOT NULL, month ASC, created_at ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	status.Charges, err = scanCharges(rows)
	if err != nil {
		return nil, err
	}

	status.Balance = status.TotalDue - status.TotalPaid - status.CreditBalance
	return status, nil
}

// GetStudentsWithStaleCharges finds students whose roster membership
// changed after their charges for the period were generated, i.e. the
// latest enrolled_at postdates the first charge row for that period.
func GetStudentsWithStaleCharges(db *sql.DB, academicYear string, month int) ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT s.id
		FROM students s
		JOIN class_enrollments e ON e.student_id = s.id
		WHERE s.is_active = 1 AND s.deleted_at IS NULL
		  AND s.fee_category IN ('payable', 'sponsored')
		  AND e.enrolled_at > (
			SELECT MIN(fc.created_at) FROM fee_charges fc
			WHERE fc.student_id = s.id AND fc.charge_type = 'MONTHLY'
			  AND fc.academic_year = ? AND fc.month = ?
		  )`,
		academicYear, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
