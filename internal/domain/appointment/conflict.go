package appointment

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

// ConflictAction decides what happens to an existing booking when a new one
// is forced over it.
type ConflictAction string

const (
	ConflictKeep   ConflictAction = "keep"
	ConflictCancel ConflictAction = "cancel"
)

func (a ConflictAction) Valid() bool {
	return a == ConflictKeep || a == ConflictCancel
}

// ConflictingAppointment is what callers get back to resolve a conflict.
type ConflictingAppointment struct {
	ID           string  `json:"id"`
	StylistID    *string `json:"stylist_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	CustomerName string  `json:"customer_name"`
}

// FindConflicts returns the active bookings overlapping [start,end).
// excludeID skips the appointment being moved.
func FindConflicts(existing []models.Appointment, start, end, excludeID string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range existing {
		if ap.ID == excludeID || !IsActive(Status(ap.Status)) {
			continue
		}
		if timeutil.TimesOverlap(start, end, ap.ScheduledTime, ap.EndTime) {
			out = append(out, ap)
		}
	}
	return out
}

func Summarize(aps []models.Appointment) ([]ConflictingAppointment, []string) {
	out := make([]ConflictingAppointment, 0, len(aps))
	ids := make([]string, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ConflictingAppointment{
			ID:           ap.ID,
			StylistID:    ap.StylistID,
			Date:         ap.ScheduledDate,
			StartTime:    ap.ScheduledTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			CustomerName: ap.CustomerName,
		})
		ids = append(ids, ap.ID)
	}
	return out, ids
}
