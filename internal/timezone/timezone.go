package timezone

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

var DefaultTimezone = "UTC"

// SetDefault changes the zone used for branches without one. Invalid names
// are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		DefaultTimezone = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Day returns the branch-local calendar date of t as YYYY-MM-DD, i.e. t
// truncated to local midnight.
func Day(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(timeutil.DateLayout)
}

// ClockTime returns the branch-local time of day of t as HH:mm.
func ClockTime(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(timeutil.TimeLayout)
}

// Weekday parses a YYYY-MM-DD date and returns its day of week, Sunday = 0.
func Weekday(date string) (int, error) {
	d, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}
