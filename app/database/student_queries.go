package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search      string // matched against matricule and names, LIKE-based
	FeeCategory string
	ClassID     string
	Gender      string
	Status      string // "active", "inactive" or "all"
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

// clause collects WHERE fragments and their parameters so filters stay
// parameterized end to end.
type clause struct {
	conditions []string
	args       []interface{}
}

func (cl *clause) add(cond string, args ...interface{}) {
	cl.conditions = append(cl.conditions, cond)
	cl.args = append(cl.args, args...)
}

func (cl *clause) where() string {
	if len(cl.conditions) == 0 {
		return ""
	}
	return " AND " + strings.Join(cl.conditions, " AND ")
}

var studentSortColumns = map[string]string{
	"matricule":   "s.matricule",
	"first_name":  "s.first_name",
	"last_name":   "s.last_name",
	"enrolled_at": "s.enrolled_at",
	"created_at":  "s.created_at",
}

func buildStudentClause(f StudentFilters) *clause {
	cl := &clause{}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		cl.add("(s.matricule LIKE ? OR s.first_name LIKE ? OR s.last_name LIKE ?)", like, like, like)
	}
	if f.FeeCategory != "" {
		cl.add("s.fee_category = ?", f.FeeCategory)
	}
	if f.ClassID != "" {
		cl.add("EXISTS (SELECT 1 FROM class_enrollments e WHERE e.student_id = s.id AND e.class_id = ?)", f.ClassID)
	}
	if f.Gender != "" {
		cl.add("s.gender = ?", f.Gender)
	}
	switch f.Status {
	case "inactive":
		cl.add("s.is_active = 0")
	case "all":
	default:
		cl.add("s.is_active = 1")
	}
	return cl
}

// GetStudents returns students matching the filters plus the total count
// before pagination.
func GetStudents(db *sql.DB, f StudentFilters) ([]*models.Student, int, error) {
	cl := buildStudentClause(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM students s WHERE s.deleted_at IS NULL` + cl.where()
	if err := db.QueryRow(countQuery, cl.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := studentSortColumns[f.SortBy]
	if !ok {
		col = "s.matricule"
	}
	dir := "ASC"
	if strings.ToLower(f.SortOrder) == "desc" {
		dir = "DESC"
	}

	query := `SELECT s.id, s.matricule, s.first_name, s.last_name, s.gender, s.date_of_birth,
			  s.address, s.guardian_name, s.guardian_phone, s.fee_category, s.discount_percentage,
			  s.sponsor_name, s.sponsor_phone, s.is_active, s.enrolled_at, s.created_at, s.updated_at
			  FROM students s
			  WHERE s.deleted_at IS NULL` + cl.where() +
		fmt.Sprintf(" ORDER BY %s %s", col, dir)

	args := cl.args
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.Matricule, &s.FirstName, &s.LastName, &s.Gender, &s.DateOfBirth,
			&s.Address, &s.GuardianName, &s.GuardianPhone, &s.FeeCategory, &s.DiscountPercentage,
			&s.SponsorName, &s.SponsorPhone, &s.IsActive, &s.EnrolledAt, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

func GetStudentByID(q Querier, studentID string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, matricule, first_name, last_name, gender, date_of_birth,
			  address, guardian_name, guardian_phone, fee_category, discount_percentage,
			  sponsor_name, sponsor_phone, is_active, enrolled_at, created_at, updated_at, deleted_at
			  FROM students WHERE id = ?`

	err := q.QueryRow(query, studentID).Scan(
		&s.ID, &s.Matricule, &s.FirstName, &s.LastName, &s.Gender, &s.DateOfBirth,
		&s.Address, &s.GuardianName, &s.GuardianPhone, &s.FeeCategory, &s.DiscountPercentage,
		&s.SponsorName, &s.SponsorPhone, &s.IsActive, &s.EnrolledAt, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent inserts a student, assigning the next STU matricule in the
// same transaction as the insert.
func CreateStudent(db *sql.DB, s *models.Student) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	matricule, err := NextMatricule(tx, "STU", "students")
	if err != nil {
		return fmt.Errorf("failed to generate matricule: %v", err)
	}

	now := time.Now()
	s.ID = uuid.NewString()
	s.Matricule = matricule
	s.IsActive = true
	if s.EnrolledAt.IsZero() {
		s.EnrolledAt = now
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err = tx.Exec(`INSERT INTO students (id, matricule, first_name, last_name, gender, date_of_birth,
		address, guardian_name, guardian_phone, fee_category, discount_percentage,
		sponsor_name, sponsor_phone, is_active, enrolled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		s.ID, s.Matricule, s.FirstName, s.LastName, s.Gender, s.DateOfBirth,
		s.Address, s.GuardianName, s.GuardianPhone, s.FeeCategory, s.DiscountPercentage,
		s.SponsorName, s.SponsorPhone, s.EnrolledAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert student: %v", err)
	}

	return tx.Commit()
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	s.UpdatedAt = time.Now()
	result, err := db.Exec(`UPDATE students SET first_name = ?, last_name = ?, gender = ?, date_of_birth = ?,
		address = ?, guardian_name = ?, guardian_phone = ?, fee_category = ?, discount_percentage = ?,
		sponsor_name = ?, sponsor_phone = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		s.FirstName, s.LastName, s.Gender, s.DateOfBirth,
		s.Address, s.GuardianName, s.GuardianPhone, s.FeeCategory, s.DiscountPercentage,
		s.SponsorName, s.SponsorPhone, s.IsActive, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteStudent soft-deletes the student and removes dependent billing
// rows in one transaction.
func DeleteStudent(db *sql.DB, studentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`UPDATE students SET is_active = 0, deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %v", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}

	cascade := []string{
		`DELETE FROM class_enrollments WHERE student_id = ?`,
		`DELETE FROM student_credits WHERE student_id = ?`,
		`DELETE FROM fee_charges WHERE student_id = ?`,
		`DELETE FROM payments WHERE student_id = ?`,
		`DELETE FROM attendance_records WHERE student_id = ?`,
	}
	for _, stmt := range cascade {
		if _, err := tx.Exec(stmt, studentID); err != nil {
			return fmt.Errorf("failed to delete dependent records: %v", err)
		}
	}

	return tx.Commit()
}
