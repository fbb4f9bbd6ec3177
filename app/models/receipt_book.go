package models

import "time"

// ReceiptBook reserves a contiguous range of receipt numbers for one
// receipt type and calendar year. current_number is the next number to
// issue; the book is exhausted once it reaches end_number.
type ReceiptBook struct {
	ID            string      `json:"id"`
	ReceiptType   ReceiptType `json:"receipt_type"`
	Year          int         `json:"year"`
	StartNumber   int         `json:"start_number"`
	EndNumber     int         `json:"end_number"`
	CurrentNumber int         `json:"current_number"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Exhausted reports whether the book has no numbers left to issue.
func (rb *ReceiptBook) Exhausted() bool {
	return rb.CurrentNumber >= rb.EndNumber
}

// Utilization is the percentage of the book's range already issued.
func (rb *ReceiptBook) Utilization() float64 {
	span := rb.EndNumber - rb.StartNumber
	if span <= 0 {
		return 0
	}
	return float64(rb.CurrentNumber-rb.StartNumber) / float64(span) * 100
}
