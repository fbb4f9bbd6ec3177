package models

import "time"

// Payment is an immutable record of money received from (or on behalf of)
// a student. Allocation against charges happens when the payment is
// recorded; the row itself is never updated afterwards.
type Payment struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"student_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ReceiptNumber string        `json:"receipt_number"`
	SponsorName   *string       `json:"sponsor_name,omitempty"`
	SponsorPhone  *string       `json:"sponsor_phone,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	RecordedBy    *string       `json:"recorded_by,omitempty"`
	PaymentDate   time.Time     `json:"payment_date"`
	CreatedAt     time.Time     `json:"created_at"`

	StudentName      string `json:"student_name,omitempty"`
	StudentMatricule string `json:"student_matricule,omitempty"`
}

// StudentCredit is surplus from an overpayment, kept as an explicit ledger
// entry so it stays auditable against the payment that produced it.
type StudentCredit struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Amount    float64   `json:"amount"`
	PaymentID string    `json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
}
