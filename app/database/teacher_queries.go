package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

func GetTeachers(db *sql.DB) ([]*models.Teacher, error) {
	query := `SELECT id, matricule, first_name, last_name, phone, email, specialty, is_active, created_at, updated_at
			  FROM teachers WHERE deleted_at IS NULL ORDER BY matricule ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t := &models.Teacher{}
		err := rows.Scan(&t.ID, &t.Matricule, &t.FirstName, &t.LastName, &t.Phone, &t.Email,
			&t.Specialty, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func GetTeacherByID(db *sql.DB, teacherID string) (*models.Teacher, error) {
	t := &models.Teacher{}
	query := `SELECT id, matricule, first_name, last_name, phone, email, specialty, is_active, created_at, updated_at
			  FROM teachers WHERE id = ? AND deleted_at IS NULL`

	err := db.QueryRow(query, teacherID).Scan(
		&t.ID, &t.Matricule, &t.FirstName, &t.LastName, &t.Phone, &t.Email,
		&t.Specialty, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTeacher(db *sql.DB, t *models.Teacher) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	matricule, err := NextMatricule(tx, "TCH", "teachers")
	if err != nil {
		return fmt.Errorf("failed to generate matricule: %v", err)
	}

	now := time.Now()
	t.ID = uuid.NewString()
	t.Matricule = matricule
	t.IsActive = true
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = tx.Exec(`INSERT INTO teachers (id, matricule, first_name, last_name, phone, email, specialty, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		t.ID, t.Matricule, t.FirstName, t.LastName, t.Phone, t.Email, t.Specialty, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert teacher: %v", err)
	}

	return tx.Commit()
}

func UpdateTeacher(db *sql.DB, t *models.Teacher) error {
	t.UpdatedAt = time.Now()
	result, err := db.Exec(`UPDATE teachers SET first_name = ?, last_name = ?, phone = ?, email = ?, specialty = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		t.FirstName, t.LastName, t.Phone, t.Email, t.Specialty, t.IsActive, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update teacher: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteTeacher(db *sql.DB, teacherID string) error {
	now := time.Now()
	result, err := db.Exec(`UPDATE teachers SET is_active = 0, deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, teacherID)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
