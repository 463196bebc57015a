// Package period computes calendar period boundaries.
//
// Each period kind (week, month, year) has its own Bounder strategy. Ranges
// are closed on both ends: Start is the first instant of the period and End
// is the last representable instant before the next period begins.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Week  Kind = "week"
	Month Kind = "month"
	Year  Kind = "year"
)

// Kind names a period width.
type Kind string

// Range is a closed calendar interval.
type Range struct {
	Kind  Kind
	Start time.Time
	End   time.Time
	Label string
}

var ErrUnknownPeriod = errors.New("unknown period")

// Bounder is the strategy interface for one period kind.
type Bounder interface {
	// Bounds returns the period offset periods before the one containing
	// ref. Offset 0 is the current period.
	Bounds(ref time.Time, offset int) Range
}

// WeekBounder implements Monday-first weeks.
type WeekBounder struct{}

func (WeekBounder) Bounds(ref time.Time, offset int) Range {
	wd := int(ref.Weekday())
	// Sunday is day 0 in Go; shift so Monday is the first day.
	sinceMonday := 6
	if wd != 0 {
		sinceMonday = wd - 1
	}
	y, m, d := ref.Date()
	start := time.Date(y, m, d-sinceMonday-7*offset, 0, 0, 0, 0, ref.Location())
	next := start.AddDate(0, 0, 7)
	end := lastInstantBefore(next)
	return Range{Kind: Week, Start: start, End: end, Label: weekLabel(start, end)}
}

// MonthBounder implements calendar months.
type MonthBounder struct{}

func (MonthBounder) Bounds(ref time.Time, offset int) Range {
	y, m, _ := ref.Date()
	start := time.Date(y, m-time.Month(offset), 1, 0, 0, 0, 0, ref.Location())
	next := start.AddDate(0, 1, 0)
	return Range{Kind: Month, Start: start, End: lastInstantBefore(next), Label: start.Format("January 2006")}
}

// YearBounder implements calendar years.
type YearBounder struct{}

func (YearBounder) Bounds(ref time.Time, offset int) Range {
	start := time.Date(ref.Year()-offset, time.January, 1, 0, 0, 0, 0, ref.Location())
	next := start.AddDate(1, 0, 0)
	return Range{Kind: Year, Start: start, End: lastInstantBefore(next), Label: start.Format("2006")}
}

var bounders = map[Kind]Bounder{
	Week:  WeekBounder{},
	Month: MonthBounder{},
	Year:  YearBounder{},
}

// GetBounder returns the strategy for k.
func GetBounder(k Kind) (Bounder, error) {
	b, ok := bounders[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(k))
	}
	return b, nil
}

func (k Kind) IsValid() bool {
	_, ok := bounders[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a period name case-insensitively. Unknown names yield
// Month and false.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return Month, false
	}
	return k, true
}

// Resolve returns the bounds of the period offset periods before the one
// containing ref. An unknown kind resolves as Month.
func Resolve(k Kind, offset int, ref time.Time) Range {
	b, err := GetBounder(k)
	if err != nil {
		b = bounders[Month]
	}
	return b.Bounds(ref, offset)
}

// Current is Resolve with offset 0.
func Current(k Kind, ref time.Time) Range {
	return Resolve(k, 0, ref)
}

// Previous returns the period immediately preceding r: it ends on the day
// before r.Start and has the same width.
func Previous(r Range) Range {
	prevEnd := r.Start.AddDate(0, 0, -1)
	return Resolve(r.Kind, 0, prevEnd)
}

// Series returns the last n periods up to and including the current one,
// oldest first.
func Series(k Kind, n int, ref time.Time) []Range {
	if n <= 0 {
		return []Range{}
	}
	out := make([]Range, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		out = append(out, Resolve(k, offset, ref))
	}
	return out
}

// Contains reports whether t falls within [Start, End].
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func lastInstantBefore(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}

func weekLabel(start, end time.Time) string {
	if start.Year() != end.Year() {
		return start.Format("02 Jan 2006") + " - " + end.Format("02 Jan 2006")
	}
	return start.Format("02 Jan") + " - " + end.Format("02 Jan 2006")
}
