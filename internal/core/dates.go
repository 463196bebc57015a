package core

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates. Values
// without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// RecordDay re-reads the wall clock of t as UTC, the zone record dates are
// parsed in. Period bounds built from the result line up with calendar dates
// stored without a zone.
func RecordDay(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}
