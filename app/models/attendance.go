package models

import "time"

// AttendanceRecord marks one student's presence in a class on a date.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	StudentID  string           `json:"student_id"`
	ClassID    string           `json:"class_id"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
	RecordedBy *string          `json:"recorded_by,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`

	StudentName string `json:"student_name,omitempty"`
}
