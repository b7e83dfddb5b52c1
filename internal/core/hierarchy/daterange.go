package hierarchy

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateRange is an inclusive filter over ReferralEvent.OccurredAt.
// A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range, both bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.From == nil && r.To == nil
}

// Key renders the range for cache keys. Open bounds render as "-".
func (r DateRange) Key() string {
	from, to := "-", "-"
	if r.From != nil {
		from = r.From.UTC().Format(time.RFC3339Nano)
	}
	if r.To != nil {
		to = r.To.UTC().Format(time.RFC3339Nano)
	}
	return from + ".." + to
}

// ParseDateRange parses optional start/end bounds. Each bound is either
// YYYY-MM-DD (UTC) or RFC3339. A date-only end bound is expanded to the last
// millisecond of that day, so end_date=2025-06-02 includes 2025-06-02T23:59:59.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if s := strings.TrimSpace(start); s != "" {
		from, _, err := parseBound(s)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q: %w", s, err)
		}
		r.From = &from
	}

	if s := strings.TrimSpace(end); s != "" {
		to, dateOnly, err := parseBound(s)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q: %w", s, err)
		}
		if dateOnly {
			to = EndOfDay(to)
		}
		r.To = &to
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s",
			r.To.Format(time.RFC3339), r.From.Format(time.RFC3339))
	}

	return r, nil
}

// EndOfDay returns 23:59:59.999 on the calendar day of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func parseBound(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC3339")
	}
	return t, false, nil
}
