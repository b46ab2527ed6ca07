// Package civil answers "what day is it" in the tracker's fixed zone.
//
// Entries are keyed by a civil date string (YYYY-MM-DD) in Europe/Berlin,
// not by a UTC timestamp, so the day rolls over at Berlin midnight.
package civil

import (
	"fmt"
	"time"

	// Zone data is embedded so Europe/Berlin resolves on hosts without tzdata.
	_ "time/tzdata"
)

const (
	// Zone is the IANA zone every entry date is interpreted in.
	Zone = "Europe/Berlin"

	// DateLayout is the civil date format used on the wire and in storage.
	DateLayout = "2006-01-02"
)

// Clock reports the current civil date in Zone. The time source is
// injectable so callers can pin "now" in tests.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock builds a Clock over now; nil means time.Now.
func NewClock(now func() time.Time) (*Clock, error) {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", Zone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{loc: loc, now: now}, nil
}

// Today returns the current date in Zone as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.now().In(c.loc).Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}
