package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// CustomDate allows parsing dates in YYYY-MM-DD format from JSON bodies
// while still scanning full timestamps from the database.
type CustomDate struct {
	time.Time
}

func (cd *CustomDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		cd.Time = time.Time{}
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date format %q, expected YYYY-MM-DD", s)
		}
	}
	cd.Time = t
	return nil
}

func (cd CustomDate) MarshalJSON() ([]byte, error) {
	if cd.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + cd.Time.Format("2006-01-02") + `"`), nil
}

func (cd *CustomDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		cd.Time = v
		return nil
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return err
		}
		cd.Time = t
		return nil
	case nil:
		cd.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CustomDate", value)
	}
}

func (cd CustomDate) Value() (driver.Value, error) {
	if cd.Time.IsZero() {
		return nil, nil
	}
	return cd.Time, nil
}
