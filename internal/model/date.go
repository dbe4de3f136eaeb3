package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display layout of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time of day. The embedded time is always
// midnight UTC so that values compare and serialize stably.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string. A full RFC 3339 timestamp is also
// accepted and truncated to its date part.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err == nil {
		return Date{t}, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return DateOf(ts), nil
	}
	return Date{}, fmt.Errorf("parsing date %q: want YYYY-MM-DD", s)
}

// String renders the date as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Compare orders two dates: -1 if d is before o, 0 if equal, +1 if after.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

// Within reports whether d lies in the inclusive range [from, to].
func (d Date) Within(from, to Date) bool {
	return d.Compare(from) >= 0 && d.Compare(to) <= 0
}

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (Date, Date) {
	y, m, _ := t.Date()
	first := NewDate(y, m, 1)
	last := Date{first.AddDate(0, 1, -1)}
	return first, last
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string. An empty string yields the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
