package models

import "time"

// User is a staff account that can sign in to the management app.
type User struct {
	ID        string    `json:"id"`
	Matricule string    `json:"matricule"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	Role      string    `json:"role" validate:"required,oneof=admin manager clerk"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
