package repository

import (
	"database/sql"
	"time"
)

// timestampLayout is fixed-width UTC so stored values sort lexically in
// time order, which PruneBefore relies on.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp, returning the zero time when the
// column is empty or malformed.
func parseTimestamp(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
