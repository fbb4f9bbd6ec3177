package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

func GetClasses(db *sql.DB, includeInactive bool) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.fee_type, c.monthly_fee, c.teacher_id, c.is_active,
			  c.created_at, c.updated_at,
			  COALESCE(t.first_name || ' ' || t.last_name, ''),
			  (SELECT COUNT(*) FROM class_enrollments e WHERE e.class_id = c.id)
			  FROM classes c
			  LEFT JOIN teachers t ON c.teacher_id = t.id`
	if !includeInactive {
		query += ` WHERE c.is_active = 1`
	}
	query += ` ORDER BY c.name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(&c.ID, &c.Name, &c.FeeType, &c.MonthlyFee, &c.TeacherID, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &c.TeacherName, &c.StudentCount)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func GetClassByID(q Querier, classID string) (*models.Class, error) {
	c := &models.Class{}
	query := `SELECT id, name, fee_type, monthly_fee, teacher_id, is_active, created_at, updated_at
			  FROM classes WHERE id = ?`
	err := q.QueryRow(query, classID).Scan(
		&c.ID, &c.Name, &c.FeeType, &c.MonthlyFee, &c.TeacherID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func CreateClass(db *sql.DB, c *models.Class) error {
	now := time.Now()
	c.ID = uuid.NewString()
	c.IsActive = true
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := db.Exec(`INSERT INTO classes (id, name, fee_type, monthly_fee, teacher_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		c.ID, c.Name, c.FeeType, c.MonthlyFee, c.TeacherID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert class: %v", err)
	}
	return nil
}

func UpdateClass(db *sql.DB, c *models.Class) error {
	c.UpdatedAt = time.Now()
	result, err := db.Exec(`UPDATE classes SET name = ?, fee_type = ?, monthly_fee = ?, teacher_id = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.FeeType, c.MonthlyFee, c.TeacherID, c.IsActive, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update class: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteClass(db *sql.DB, classID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM class_enrollments WHERE class_id = ?`, classID); err != nil {
		return fmt.Errorf("failed to delete enrollments: %v", err)
	}

	result, err := tx.Exec(`DELETE FROM classes WHERE id = ?`, classID)
	if err != nil {
		return fmt.Errorf("failed to delete class: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// ReplaceEnrollments replaces a class roster wholesale: existing
// memberships are deleted and the new list reinserted, so every kept
// student gets a fresh enrolled_at. Returns the ids of students affected
// by the change (removed or present in the new roster).
func ReplaceEnrollments(db *sql.DB, classID string, studentIDs []string) ([]string, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	affected := map[string]bool{}
	rows, err := tx.Query(`SELECT student_id FROM class_enrollments WHERE class_id = ?`, classID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		affected[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM class_enrollments WHERE class_id = ?`, classID); err != nil {
		return nil, fmt.Errorf("failed to clear roster: %v", err)
	}

	now := time.Now()
	for _, studentID := range studentIDs {
		_, err := tx.Exec(`INSERT INTO class_enrollments (id, class_id, student_id, enrolled_at) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), classID, studentID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to enroll student %s: %v", studentID, err)
		}
		affected[studentID] = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(affected))
	for id := range affected {
		ids = append(ids, id)
	}
	return ids, nil
}

func GetEnrollmentsByClass(db *sql.DB, classID string) ([]*models.Enrollment, error) {
	query := `SELECT e.id, e.class_id, e.student_id, e.enrolled_at,
			  s.first_name || ' ' || s.last_name, s.matricule
			  FROM class_enrollments e
			  JOIN students s ON e.student_id = s.id
			  WHERE e.class_id = ? AND s.deleted_at IS NULL
			  ORDER BY s.last_name ASC, s.first_name ASC`

	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{}
		err := rows.Scan(&e.ID, &e.ClassID, &e.StudentID, &e.EnrolledAt, &e.StudentName, &e.StudentMatricule)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// SpecialClassSurcharge sums the monthly fees of the special classes the
// student is currently enrolled in.
func SpecialClassSurcharge(q Querier, studentID string) (float64, error) {
	var surcharge float64
	err := q.QueryRow(`SELECT COALESCE(SUM(c.monthly_fee), 0)
		FROM class_enrollments e
		JOIN classes c ON e.class_id = c.id
		WHERE e.student_id = ? AND c.fee_type = 'special' AND c.is_active = 1`,
		studentID).Scan(&surcharge)
	return surcharge, err
}
