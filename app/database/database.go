package database

import "database/sql"

// Querier is satisfied by both *sql.DB and *sql.Tx so query helpers can
// run standalone or inside a caller's transaction.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
