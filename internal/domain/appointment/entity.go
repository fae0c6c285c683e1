package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const MaxReschedules = 3

type BookingType string

const (
	BookingOnline BookingType = "online"
	BookingPhone  BookingType = "phone"
	BookingWalkIn BookingType = "walk_in"
)

func (b BookingType) Valid() bool {
	switch b {
	case BookingOnline, BookingPhone, BookingWalkIn:
		return true
	}
	return false
}

// ===============================
// Domain Actions
// ===============================

// Transition moves ap along the state machine and stamps the matching
// timestamp. It returns the previous status.
func Transition(ap *models.Appointment, action Action, now time.Time) (Status, error) {
	from := Status(ap.Status)
	to, err := Next(from, action)
	if err != nil {
		return from, withID(err, ap.ID)
	}

	switch to {
	case StatusCheckedIn:
		ap.CheckedInAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	ap.Status = string(to)
	return from, nil
}

type Cancellation struct {
	Reason         string
	CancelledBy    string
	SalonCancelled bool
}

func Cancel(ap *models.Appointment, c Cancellation, now time.Time) (Status, error) {
	if c.Reason == "" {
		return Status(ap.Status), httperr.ErrValidation("reason_required", "cancellation reason is required", ap.ID)
	}

	from, err := Transition(ap, ActionCancel, now)
	if err != nil {
		return from, err
	}

	by := c.CancelledBy
	ap.CancelledAt = &now
	ap.CancelledBy = &by
	ap.CancellationReason = c.Reason
	ap.IsSalonCancelled = c.SalonCancelled
	return from, nil
}

// CanReschedule checks both the status and the reschedule limit.
func CanReschedule(ap *models.Appointment, limit int) error {
	if !Can(Status(ap.Status), ActionReschedule) {
		return httperr.ErrInvalidTransition(string(ActionReschedule), ap.Status, ap.ID)
	}
	if ap.RescheduleCount >= limit {
		return httperr.ErrBusiness(
			"reschedule_limit_reached",
			"appointment was already rescheduled the maximum number of times",
			ap.ID,
		)
	}
	return nil
}

// RootID is the first appointment of a reschedule chain.
func RootID(ap *models.Appointment) string {
	if ap.OriginalAppointmentID != nil && *ap.OriginalAppointmentID != "" {
		return *ap.OriginalAppointmentID
	}
	return ap.ID
}

func withID(err error, id string) error {
	if e, ok := httperr.As(err); ok && len(e.EntityIDs) == 0 {
		e.EntityIDs = []string{id}
	}
	return err
}
