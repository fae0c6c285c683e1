package availability

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

// stylistDay is everything that takes a stylist's time on one date. All
// checks use the half-open overlap rule, so back-to-back is allowed.
type stylistDay struct {
	breaks   []models.StylistBreak
	blocks   []models.StylistBlockedSlot
	bookings []models.Appointment
}

func (d *stylistDay) free(start, end int) bool {
	return !d.onBreak(start, end) && !d.blocked(start, end) && !d.booked(start, end)
}

func (d *stylistDay) onBreak(start, end int) bool {
	for _, b := range d.breaks {
		if overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func (d *stylistDay) blocked(start, end int) bool {
	for _, b := range d.blocks {
		if b.IsFullDay || overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func (d *stylistDay) booked(start, end int) bool {
	for _, ap := range d.bookings {
		if overlaps(start, end, ap.ScheduledTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func overlaps(start, end int, from, to string) bool {
	return timeutil.TimesOverlap(
		timeutil.FormatHM(start), timeutil.FormatHM(end),
		from, to,
	)
}
