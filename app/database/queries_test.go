package database

import (
	"database/sql"
	"testing"

	"annur-center/app/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db))
	return db
}

func TestNextMatricule(t *testing.T) {
	db := openTestDB(t)

	first, err := NextMatricule(db, "STU", "students")
	require.NoError(t, err)
	assert.Equal(t, "STU-000001", first)

	s := &models.Student{FirstName: "Amina", LastName: "Test", FeeCategory: models.FeeCategoryPayable}
	require.NoError(t, CreateStudent(db, s))
	assert.Equal(t, "STU-000001", s.Matricule)

	second, err := NextMatricule(db, "STU", "students")
	require.NoError(t, err)
	assert.Equal(t, "STU-000002", second)

	// sequences are per table
	teacherFirst, err := NextMatricule(db, "TCH", "teachers")
	require.NoError(t, err)
	assert.Equal(t, "TCH-000001", teacherFirst)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{
		Email:     "admin@annur.test",
		FirstName: "Admin",
		LastName:  "User",
		Role:      "admin",
	}
	require.NoError(t, CreateUser(db, user, "s3cret-pass"))
	assert.Equal(t, "USR-000001", user.Matricule)

	loaded, err := GetUserByEmail(db, "admin@annur.test")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", loaded.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(loaded.Password), []byte("s3cret-pass")))

	_, err = GetUserByEmail(db, "nobody@annur.test")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
