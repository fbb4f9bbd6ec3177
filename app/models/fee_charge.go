package models

import "time"

// FeeCharge is one billing obligation for a student: either the annual
// registration fee or one month of tuition. amount_paid is a running
// total maintained by the payment allocator and never exceeds amount.
type FeeCharge struct {
	ID           string       `json:"id"`
	StudentID    string       `json:"student_id"`
	ChargeType   ChargeType   `json:"charge_type"`
	AcademicYear string       `json:"academic_year"`
	Month        *int         `json:"month,omitempty"` // 1..12, nil for annual charges
	Amount       float64      `json:"amount"`
	AmountPaid   float64      `json:"amount_paid"`
	Status       ChargeStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	StudentName      string `json:"student_name,omitempty"`
	StudentMatricule string `json:"student_matricule,omitempty"`
}

// Outstanding returns the amount still owed on this charge.
func (fc *FeeCharge) Outstanding() float64 {
	return fc.Amount - fc.AmountPaid
}
