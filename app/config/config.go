package config

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	DB     *sql.DB
	DBPath string
}

var AppConfig *Config

// InitDB opens the embedded SQLite database and applies connection settings.
func InitDB() {
	dbPath := os.Getenv("ANNUR_DB_PATH")
	if dbPath == "" {
		dbPath = "annur.db"
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	// One live connection: transactions are serialized at the connection
	// level, and SQLite allows a single writer at a time anyway.
	db.SetMaxOpenConns(1)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}

	AppConfig = &Config{
		DB:     db,
		DBPath: dbPath,
	}
	log.Printf("Database opened at %s", dbPath)
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetPort returns the port the local API server listens on.
func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "7700"
	}
	return port
}
