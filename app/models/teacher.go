package models

import "time"

// Teacher is an instructor at the center.
type Teacher struct {
	ID        string     `json:"id"`
	Matricule string     `json:"matricule"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty" validate:"omitempty,email"`
	Specialty *string    `json:"specialty,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
