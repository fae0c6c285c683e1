package walkin

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCalled    Status = "called"
	StatusServing   Status = "serving"
	StatusCompleted Status = "completed"
	StatusLeft      Status = "left"
)

type Action string

const (
	ActionCall     Action = "call"
	ActionServe    Action = "start_serving"
	ActionComplete Action = "complete"
	ActionLeave    Action = "leave"
)

var transitions = map[Status]map[Action]Status{
	StatusWaiting: {
		ActionCall:     StatusCalled,
		ActionServe:    StatusServing,
		ActionComplete: StatusCompleted,
		ActionLeave:    StatusLeft,
	},
	StatusCalled: {
		ActionServe:    StatusServing,
		ActionComplete: StatusCompleted,
		ActionLeave:    StatusLeft,
	},
	StatusServing: {
		ActionComplete: StatusCompleted,
		ActionLeave:    StatusLeft,
	},
}

func Next(current Status, action Action) (Status, error) {
	if to, ok := transitions[current][action]; ok {
		return to, nil
	}
	return "", httperr.ErrInvalidTransition(string(action), string(current))
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusLeft
}

// AllStatuses is the display order used by queue stats.
func AllStatuses() []Status {
	return []Status{StatusWaiting, StatusCalled, StatusServing, StatusCompleted, StatusLeft}
}
