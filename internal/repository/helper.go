package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			// SQLite CURRENT_TIMESTAMP emits this layout.
			returnTime, err = time.Parse("2006-01-02 15:04:05", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
			}
		}
	}
	return returnTime.UTC(), nil
}

// formatNullTime converts an optional time into a driver value, storing
// RFC3339 or NULL.
func formatNullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// scanNullTime converts a nullable column back into an optional time.
func scanNullTime(str sql.NullString) (*time.Time, error) {
	if !str.Valid || str.String == "" {
		return nil, nil
	}
	parsed, err := ParseTime(str.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// nullString converts an optional string pointer into a driver value.
func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// stringPtr converts a nullable column into an optional string.
func stringPtr(str sql.NullString) *string {
	if !str.Valid {
		return nil
	}
	value := str.String
	return &value
}
