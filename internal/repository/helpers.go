package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
)

// timeLayout is fixed-width so stored timestamps sort lexically in UTC.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// formatTime converts t to its stored UTC form.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the stored layout and plain RFC3339 from older rows.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// nullableLevelToValue converts a *WellbeingLevel to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableLevelToValue(l *domain.WellbeingLevel) any {
	if l == nil {
		return nil
	}
	return string(*l)
}

// parseNullableLevel returns nil for NULL or an unrecognized level.
func parseNullableLevel(s sql.NullString) *domain.WellbeingLevel {
	if !s.Valid {
		return nil
	}
	l, ok := domain.ParseWellbeingLevel(s.String)
	if !ok {
		return nil
	}
	return &l
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
