package database

import (
	"database/sql"
	"time"

	"annur-center/app/models"
)

type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	TotalTeachers     int     `json:"total_teachers"`
	TotalClasses      int     `json:"total_classes"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	TotalOutstanding  float64 `json:"total_outstanding"`
	FeeCollectionRate float64 `json:"fee_collection_rate"`
}

func GetDashboardStats(db *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE is_active = 1 AND deleted_at IS NULL`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM teachers WHERE is_active = 1 AND deleted_at IS NULL`).Scan(&stats.TotalTeachers)
	if err != nil {
		return nil, err
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM classes WHERE is_active = 1`).Scan(&stats.TotalClasses)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= ?`, monthStart).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, err
	}

	var totalDue, totalPaid float64
	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(amount_paid), 0) FROM fee_charges`).Scan(&totalDue, &totalPaid)
	if err != nil {
		return nil, err
	}
	stats.TotalOutstanding = totalDue - totalPaid
	if totalDue > 0 {
		stats.FeeCollectionRate = totalPaid / totalDue * 100
	}

	return stats, nil
}

// MethodTotal is collected revenue grouped by payment method.
type MethodTotal struct {
	Method models.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Total  float64              `json:"total"`
}

// FinancialReport summarizes billing and collection over a date range.
type FinancialReport struct {
	From             string            `json:"from"`
	To               string            `json:"to"`
	TotalCharged     float64           `json:"total_charged"`
	TotalCollected   float64           `json:"total_collected"`
	TotalOutstanding float64           `json:"total_outstanding"`
	TotalCredits     float64           `json:"total_credits"`
	PaymentCount     int               `json:"payment_count"`
	ByMethod         []MethodTotal     `json:"by_method"`
	Payments         []*models.Payment `json:"payments"`
}

// GetFinancialReport aggregates payments within the inclusive date range
// alongside the overall charge position.
func GetFinancialReport(db *sql.DB, from, to string) (*FinancialReport, error) {
	report := &FinancialReport{From: from, To: to}

	cl := &clause{}
	if from != "" {
		cl.add("payment_date >= ?", from)
	}
	if to != "" {
		cl.add("payment_date < date(?, '+1 day')", to)
	}

	err := db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments WHERE 1 = 1`+cl.where(), cl.args...).
		Scan(&report.PaymentCount, &report.TotalCollected)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments WHERE 1 = 1`+cl.where()+` GROUP BY payment_method ORDER BY payment_method`, cl.args...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var mt MethodTotal
		if err := rows.Scan(&mt.Method, &mt.Count, &mt.Total); err != nil {
			rows.Close()
			return nil, err
		}
		report.ByMethod = append(report.ByMethod, mt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var totalPaid float64
	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(amount_paid), 0) FROM fee_charges`).
		Scan(&report.TotalCharged, &totalPaid)
	if err != nil {
		return nil, err
	}
	report.TotalOutstanding = report.TotalCharged - totalPaid

	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_credits`).Scan(&report.TotalCredits)
	if err != nil {
		return nil, err
	}

	report.Payments, err = GetPayments(db, PaymentFilters{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}

	return report, nil
}
