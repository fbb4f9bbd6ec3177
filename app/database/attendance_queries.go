package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

// AttendanceEntry is one student's status in a bulk attendance submission.
type AttendanceEntry struct {
	StudentID string
	Status    models.AttendanceStatus
}

// RecordClassAttendance replaces the attendance sheet for (class, date)
// in one transaction.
func RecordClassAttendance(db *sql.DB, classID string, date time.Time, recordedBy *string, entries []AttendanceEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	day := date.Truncate(24 * time.Hour)
	if _, err := tx.Exec(`DELETE FROM attendance_records WHERE class_id = ? AND date = ?`, classID, day); err != nil {
		return fmt.Errorf("failed to clear attendance sheet: %v", err)
	}

	now := time.Now()
	for _, entry := range entries {
		_, err := tx.Exec(`INSERT INTO attendance_records (id, student_id, class_id, date, status, recorded_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), entry.StudentID, classID, day, entry.Status, recordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("failed to record attendance for student %s: %v", entry.StudentID, err)
		}
	}

	return tx.Commit()
}

func GetAttendanceByClassAndDate(db *sql.DB, classID string, date time.Time) ([]*models.AttendanceRecord, error) {
	day := date.Truncate(24 * time.Hour)
	query := `SELECT a.id, a.student_id, a.class_id, a.date, a.status, a.recorded_by, a.created_at,
			  s.first_name || ' ' || s.last_name
			  FROM attendance_records a
			  JOIN students s ON a.student_id = s.id
			  WHERE a.class_id = ? AND a.date = ?
			  ORDER BY s.last_name ASC, s.first_name ASC`

	rows, err := db.Query(query, classID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		r := &models.AttendanceRecord{}
		err := rows.Scan(&r.ID, &r.StudentID, &r.ClassID, &r.Date, &r.Status, &r.RecordedBy, &r.CreatedAt, &r.StudentName)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
