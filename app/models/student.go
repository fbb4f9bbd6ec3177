package models

import "time"

// Student is a learner enrolled at the center. The fee_category and
// discount_percentage fields drive charge eligibility and amounts.
type Student struct {
	ID                 string      `json:"id"`
	Matricule          string      `json:"matricule"`
	FirstName          string      `json:"first_name" validate:"required"`
	LastName           string      `json:"last_name" validate:"required"`
	Gender             *string     `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	DateOfBirth        *time.Time  `json:"date_of_birth,omitempty"`
	Address            *string     `json:"address,omitempty"`
	GuardianName       *string     `json:"guardian_name,omitempty"`
	GuardianPhone      *string     `json:"guardian_phone,omitempty"`
	FeeCategory        FeeCategory `json:"fee_category" validate:"required,oneof=payable exempt sponsored"`
	DiscountPercentage float64     `json:"discount_percentage" validate:"gte=0,lte=100"`
	SponsorName        *string     `json:"sponsor_name,omitempty"`
	SponsorPhone       *string     `json:"sponsor_phone,omitempty"`
	IsActive           bool        `json:"is_active"`
	EnrolledAt         time.Time   `json:"enrolled_at"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	DeletedAt          *time.Time  `json:"deleted_at,omitempty"`

	// Populated by list queries that join enrollments.
	ClassNames []string `json:"class_names,omitempty"`
}

// Billable reports whether charge generation should consider this student.
func (s *Student) Billable() bool {
	return s.IsActive && s.DeletedAt == nil && s.FeeCategory != FeeCategoryExempt
}
