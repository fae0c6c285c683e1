package schedule

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

// ValidateRange requires well-formed times with start before end on the
// same day.
func ValidateRange(start, end string) error {
	s, err := timeutil.ParseHM(start)
	if err != nil {
		return httperr.ErrValidation("invalid_time", err.Error())
	}
	e, err := timeutil.ParseHM(end)
	if err != nil {
		return httperr.ErrValidation("invalid_time", err.Error())
	}
	if s >= e {
		return httperr.ErrValidation("invalid_time_range", "start time must be before end time")
	}
	return nil
}

// BreaksCollide reports whether two breaks can ever be active on the same
// day and overlap there.
func BreaksCollide(a, b models.StylistBreak) bool {
	if a.DayOfWeek != nil && b.DayOfWeek != nil && *a.DayOfWeek != *b.DayOfWeek {
		return false
	}
	return timeutil.TimesOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime)
}

// BlockCovers reports whether a blocked slot takes the given window.
func BlockCovers(b models.StylistBlockedSlot, start, end string) bool {
	if b.IsFullDay {
		return true
	}
	return timeutil.TimesOverlap(b.StartTime, b.EndTime, start, end)
}
