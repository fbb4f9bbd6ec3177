package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

// ReceiptNumberExists reports whether any payment already carries the
// receipt number.
func ReceiptNumberExists(q Querier, receiptNumber string) (bool, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM payments WHERE receipt_number = ?`, receiptNumber).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertPayment writes the payment row. Runs inside the recorder's
// transaction together with the allocation updates.
func InsertPayment(q Querier, p *models.Payment) error {
	now := time.Now()
	p.ID = uuid.NewString()
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	p.CreatedAt = now

	var receipt interface{}
	if p.ReceiptNumber != "" {
		receipt = p.ReceiptNumber
	}

	_, err := q.Exec(`INSERT INTO payments (id, student_id, amount, payment_method, receipt_number,
		sponsor_name, sponsor_phone, notes, recorded_by, payment_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.StudentID, p.Amount, p.PaymentMethod, receipt,
		p.SponsorName, p.SponsorPhone, p.Notes, p.RecordedBy, p.PaymentDate, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}
	return nil
}

// InsertStudentCredit records overpayment surplus against the payment
// that produced it.
func InsertStudentCredit(q Querier, studentID string, amount float64, paymentID string) error {
	_, err := q.Exec(`INSERT INTO student_credits (id, student_id, amount, payment_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), studentID, amount, paymentID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit: %v", err)
	}
	return nil
}

func GetStudentCreditBalance(q Querier, studentID string) (float64, error) {
	var balance float64
	err := q.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_credits WHERE student_id = ?`, studentID).Scan(&balance)
	return balance, err
}

// PaymentFilters represents filtering options for the payments list.
type PaymentFilters struct {
	StudentID     string
	PaymentMethod string
	ReceiptSearch string // LIKE-based substring match
	DateFrom      string // YYYY-MM-DD, inclusive
	DateTo        string // YYYY-MM-DD, inclusive
}

func GetPayments(db *sql.DB, f PaymentFilters) ([]*models.Payment, error) {
	cl := &clause{}
	if f.StudentID != "" {
		cl.add("p.student_id = ?", f.StudentID)
	}
	if f.PaymentMethod != "" {
		cl.add("p.payment_method = ?", f.PaymentMethod)
	}
	if f.ReceiptSearch != "" {
		cl.add("p.receipt_number LIKE ?", "%"+f.ReceiptSearch+"%")
	}
	if f.DateFrom != "" {
		cl.add("p.payment_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		// inclusive upper bound: anything before the next day
		cl.add("p.payment_date < date(?, '+1 day')", f.DateTo)
	}

	query := `SELECT p.id, p.student_id, p.amount, p.payment_method, COALESCE(p.receipt_number, ''),
			  p.sponsor_name, p.sponsor_phone, p.notes, p.recorded_by, p.payment_date, p.created_at,
			  s.first_name || ' ' || s.last_name, s.matricule
			  FROM payments p
			  JOIN students s ON p.student_id = s.id
			  WHERE 1 = 1` + cl.where() +
		` ORDER BY p.payment_date DESC, p.created_at DESC`

	rows, err := db.Query(query, cl.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentMethod, &p.ReceiptNumber,
			&p.SponsorName, &p.SponsorPhone, &p.Notes, &p.RecordedBy, &p.PaymentDate, &p.CreatedAt,
			&p.StudentName, &p.StudentMatricule)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT p.id, p.student_id, p.amount, p.payment_method, COALESCE(p.receipt_number, ''),
			  p.sponsor_name, p.sponsor_phone, p.notes, p.recorded_by, p.payment_date, p.created_at,
			  s.first_name || ' ' || s.last_name, s.matricule
			  FROM payments p
			  JOIN students s ON p.student_id = s.id
			  WHERE p.id = ?`

	err := db.QueryRow(query, paymentID).Scan(
		&p.ID, &p.StudentID, &p.Amount, &p.PaymentMethod, &p.ReceiptNumber,
		&p.SponsorName, &p.SponsorPhone, &p.Notes, &p.RecordedBy, &p.PaymentDate, &p.CreatedAt,
		&p.StudentName, &p.StudentMatricule,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
