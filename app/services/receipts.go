package services

import (
	"database/sql"
	"errors"
	"fmt"

	"annur-center/app/database"
	"annur-center/app/models"
)

// ErrReceiptBookExhausted is returned when the active book has no numbers
// left. A new book must be opened before more receipts can be issued.
var ErrReceiptBookExhausted = errors.New("receipt book exhausted")

var receiptPrefixes = map[models.ReceiptType]string{
	models.ReceiptTypePayment:  "RCP",
	models.ReceiptTypeDonation: "DON",
}

// ReceiptIssue is one allocated receipt number.
type ReceiptIssue struct {
	ReceiptNumber string `json:"receipt_number"`
	BookID        string `json:"book_id"`
	Year          int    `json:"year"`
}

// NextReceiptNumber issues the next number from the active book for
// (type, year), creating the first book on demand. Callers that persist
// the number must pass their transaction so the book pointer and the
// consuming row move together.
func NextReceiptNumber(q database.Querier, receiptType models.ReceiptType, year int) (*ReceiptIssue, error) {
	prefix, ok := receiptPrefixes[receiptType]
	if !ok {
		return nil, fmt.Errorf("unknown receipt type %q", receiptType)
	}

	book, err := database.GetActiveReceiptBook(q, receiptType, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt book: %v", err)
	}
	if book == nil {
		book, err = database.CreateReceiptBook(q, receiptType, year)
		if err != nil {
			return nil, err
		}
	}

	if book.Exhausted() {
		return nil, ErrReceiptBookExhausted
	}

	number := book.CurrentNumber
	if err := database.AdvanceReceiptBook(q, book.ID, number+1); err != nil {
		return nil, err
	}

	return &ReceiptIssue{
		ReceiptNumber: fmt.Sprintf("%s-%d-%04d", prefix, year, number),
		BookID:        book.ID,
		Year:          year,
	}, nil
}

// ReceiptBookSummary is one book with its utilization for the stats view.
type ReceiptBookSummary struct {
	models.ReceiptBook
	Remaining   int     `json:"remaining"`
	Utilization float64 `json:"utilization_percent"`
	Exhausted   bool    `json:"exhausted"`
}

func GetReceiptBookStats(db *sql.DB, year int) ([]ReceiptBookSummary, error) {
	books, err := database.GetReceiptBooks(db, year)
	if err != nil {
		return nil, err
	}

	summaries := make([]ReceiptBookSummary, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, ReceiptBookSummary{
			ReceiptBook: *book,
			Remaining:   book.EndNumber - book.CurrentNumber,
			Utilization: book.Utilization(),
			Exhausted:   book.Exhausted(),
		})
	}
	return summaries, nil
}
