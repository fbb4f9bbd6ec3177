package models

import "time"

// Class is a study group. Special classes carry a monthly fee that is
// added to the standard fee of every enrolled student.
type Class struct {
	ID         string       `json:"id"`
	Name       string       `json:"name" validate:"required"`
	FeeType    ClassFeeType `json:"fee_type" validate:"required,oneof=standard special"`
	MonthlyFee float64      `json:"monthly_fee" validate:"gte=0"`
	TeacherID  *string      `json:"teacher_id,omitempty"`
	IsActive   bool         `json:"is_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	TeacherName  string `json:"teacher_name,omitempty"`
	StudentCount int    `json:"student_count,omitempty"`
}

// Enrollment links a student to a class. Rosters are replaced wholesale
// on update, so enrolled_at reflects the latest roster write.
type Enrollment struct {
	ID         string    `json:"id"`
	ClassID    string    `json:"class_id"`
	StudentID  string    `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`

	StudentName      string `json:"student_name,omitempty"`
	StudentMatricule string `json:"student_matricule,omitempty"`
}
