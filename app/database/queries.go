package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, matricule, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE email = ? AND is_active = 1`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Matricule, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, matricule, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE id = ? AND is_active = 1`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Matricule, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a staff account, hashing the password and assigning
// the next USR matricule inside one transaction.
func CreateUser(db *sql.DB, user *models.User, plainPassword string) error {
	hashed, err := hashPassword(plainPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	matricule, err := NextMatricule(tx, "USR", "users")
	if err != nil {
		return fmt.Errorf("failed to generate matricule: %v", err)
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.Matricule = matricule
	user.Password = hashed
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = tx.Exec(`INSERT INTO users (id, matricule, email, password, first_name, last_name, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		user.ID, user.Matricule, user.Email, user.Password,
		user.FirstName, user.LastName, user.Role, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}

	return tx.Commit()
}

// NextMatricule returns the next sequential code of the form <PREFIX>-000001
// for the given table. The read and the subsequent insert should share a
// transaction so the sequence cannot be reused.
func NextMatricule(q Querier, prefix, table string) (string, error) {
	// table comes from a fixed set of internal callers, never from input
	query := fmt.Sprintf(
		`SELECT COALESCE(MAX(CAST(SUBSTR(matricule, %d) AS INTEGER)), 0)
		 FROM %s WHERE matricule LIKE ?`,
		len(prefix)+2, table,
	)

	var max int
	if err := q.QueryRow(query, prefix+"-%").Scan(&max); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, max+1), nil
}
