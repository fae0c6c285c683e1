package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked      Status = "booked"
	StatusConfirmed   Status = "confirmed"
	StatusCheckedIn   Status = "checked_in"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionCheckIn    Action = "check_in"
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionNoShow     Action = "mark_no_show"
	ActionReschedule Action = "reschedule"
	ActionReassign   Action = "reassign"
)

// transitions is the whole state machine: current status -> action -> next
// status. Reassign keeps the status.
var transitions = map[Status]map[Action]Status{
	StatusBooked: {
		ActionConfirm:    StatusConfirmed,
		ActionCheckIn:    StatusCheckedIn,
		ActionCancel:     StatusCancelled,
		ActionNoShow:     StatusNoShow,
		ActionReschedule: StatusRescheduled,
		ActionReassign:   StatusBooked,
	},
	StatusConfirmed: {
		ActionCheckIn:    StatusCheckedIn,
		ActionCancel:     StatusCancelled,
		ActionNoShow:     StatusNoShow,
		ActionReschedule: StatusRescheduled,
		ActionReassign:   StatusConfirmed,
	},
	StatusCheckedIn: {
		ActionStart:      StatusInProgress,
		ActionCancel:     StatusCancelled,
		ActionReschedule: StatusRescheduled,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
	},
}

// InitialStatus is the status of every new booking.
func InitialStatus() Status {
	return StatusBooked
}

// Next resolves action against the transition table.
func Next(current Status, action Action) (Status, error) {
	if to, ok := transitions[current][action]; ok {
		return to, nil
	}
	return "", httperr.ErrInvalidTransition(string(action), string(current))
}

func Can(current Status, action Action) bool {
	_, ok := transitions[current][action]
	return ok
}

// IsActive reports statuses that still occupy the stylist's time.
func IsActive(s Status) bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusRescheduled:
		return false
	}
	return true
}

// InactiveStatuses are excluded from conflict and availability checks.
func InactiveStatuses() []string {
	return []string{
		string(StatusCancelled),
		string(StatusNoShow),
		string(StatusRescheduled),
	}
}
