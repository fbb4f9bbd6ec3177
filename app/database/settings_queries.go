package database

import (
	"database/sql"
	"strconv"
	"time"

	"annur-center/app/models"
)

// GetSetting returns the value for a key, or "" when unset.
func GetSetting(q Querier, key string) (string, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetSettingFloat parses a numeric setting, treating unset as 0.
func GetSettingFloat(q Querier, key string) (float64, error) {
	value, err := GetSetting(q, key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// GetSettingInt parses an integer setting, returning fallback when unset
// or unparsable.
func GetSettingInt(q Querier, key string, fallback int) (int, error) {
	value, err := GetSetting(q, key)
	if err != nil {
		return fallback, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

func SetSetting(db *sql.DB, key, value string) error {
	_, err := db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	return err
}

func GetAllSettings(db *sql.DB) ([]models.Setting, error) {
	rows, err := db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
