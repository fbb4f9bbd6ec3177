package database

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/models"

	"github.com/google/uuid"
)

// GetActiveReceiptBook returns the latest book for (type, year), or nil
// when none has been created yet.
func GetActiveReceiptBook(q Querier, receiptType models.ReceiptType, year int) (*models.ReceiptBook, error) {
	rb := &models.ReceiptBook{}
	err := q.QueryRow(`SELECT id, receipt_type, year, start_number, end_number, current_number, created_at
		FROM receipt_books
		WHERE receipt_type = ? AND year = ?
		ORDER BY start_number DESC LIMIT 1`,
		receiptType, year).Scan(
		&rb.ID, &rb.ReceiptType, &rb.Year, &rb.StartNumber, &rb.EndNumber, &rb.CurrentNumber, &rb.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rb, nil
}

// CreateReceiptBook reserves the next 1000 numbers after any existing
// book for (type, year).
func CreateReceiptBook(q Querier, receiptType models.ReceiptType, year int) (*models.ReceiptBook, error) {
	var maxEnd int
	err := q.QueryRow(`SELECT COALESCE(MAX(end_number), 0) FROM receipt_books WHERE receipt_type = ? AND year = ?`,
		receiptType, year).Scan(&maxEnd)
	if err != nil {
		return nil, err
	}

	rb := &models.ReceiptBook{
		ID:            uuid.NewString(),
		ReceiptType:   receiptType,
		Year:          year,
		StartNumber:   maxEnd + 1,
		EndNumber:     maxEnd + 1 + 1000,
		CurrentNumber: maxEnd + 1,
		CreatedAt:     time.Now(),
	}

	_, err = q.Exec(`INSERT INTO receipt_books (id, receipt_type, year, start_number, end_number, current_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rb.ID, rb.ReceiptType, rb.Year, rb.StartNumber, rb.EndNumber, rb.CurrentNumber, rb.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt book: %v", err)
	}
	return rb, nil
}

// AdvanceReceiptBook moves the current pointer past an issued number.
func AdvanceReceiptBook(q Querier, bookID string, newCurrent int) error {
	_, err := q.Exec(`UPDATE receipt_books SET current_number = ? WHERE id = ?`, newCurrent, bookID)
	if err != nil {
		return fmt.Errorf("failed to advance receipt book: %v", err)
	}
	return nil
}

// GetReceiptBooks lists books, optionally restricted to a year.
func GetReceiptBooks(db *sql.DB, year int) ([]*models.ReceiptBook, error) {
	query := `SELECT id, receipt_type, year, start_number, end_number, current_number, created_at
			  FROM receipt_books`
	var args []interface{}
	if year > 0 {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY year DESC, receipt_type ASC, start_number ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.ReceiptBook
	for rows.Next() {
		rb := &models.ReceiptBook{}
		err := rows.Scan(&rb.ID, &rb.ReceiptType, &rb.Year, &rb.StartNumber, &rb.EndNumber, &rb.CurrentNumber, &rb.CreatedAt)
		if err != nil {
			return nil, err
		}
		books = append(books, rb)
	}
	return books, rows.Err()
}
