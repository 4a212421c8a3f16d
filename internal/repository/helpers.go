package repository

import (
	"time"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// dateLayout is used for document dates
const dateLayout = "2006-01-02"

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseDate parses a YYYY-MM-DD document date
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nullableID converts an optional id to a SQL argument
func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
