package walkin

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domainappt "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// AppointmentCreator books the appointment a walk-in turns into.
type AppointmentCreator interface {
	Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
}

type StartServingInput struct {
	TenantID  string
	EntryID   string
	StylistID string
	UserID    string
}

type StartServing struct {
	deps
	creator AppointmentCreator
}

func NewStartServing(
	repo domain.Repository,
	locker Locker,
	creator AppointmentCreator,
	sink audit.Sink,
) *StartServing {
	return &StartServing{
		deps:    newDeps(repo, locker, sink),
		creator: creator,
	}
}

// Execute books a walk_in appointment starting now with the given stylist,
// then links it to the entry.
func (uc *StartServing) Execute(
	ctx context.Context,
	in StartServingInput,
) (*models.WalkInQueueEntry, error) {

	if in.StylistID == "" {
		return nil, httperr.ErrValidation("walk_in_requires_stylist", "a stylist is required to start serving")
	}

	current, err := uc.repo.Get(ctx, in.TenantID, in.EntryID)
	if err != nil {
		return nil, err
	}
	branch, err := uc.repo.GetBranch(ctx, in.TenantID, current.BranchID)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, queueKey(current.BranchID, current.QueueDate))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-read under the lock before booking.
	current, err = uc.repo.Get(ctx, in.TenantID, in.EntryID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Next(domain.Status(current.Status), domain.ActionServe); err != nil {
		return nil, withID(err, current.ID)
	}

	// --------------------------------------------------
	// 1️⃣ Appointment
	// --------------------------------------------------
	now := uc.now()
	create := appointment.CreateAppointmentInput{
		TenantID:      in.TenantID,
		BranchID:      current.BranchID,
		UserID:        in.UserID,
		CustomerName:  current.CustomerName,
		CustomerPhone: current.CustomerPhone,
		ServiceIDs:    current.ServiceIDs,
		StylistID:     in.StylistID,
		Date:          current.QueueDate,
		Time:          timezone.ClockTime(now, branch.Timezone),
		BookingType:   domainappt.BookingWalkIn,
	}
	if current.CustomerID != nil {
		create.CustomerID = *current.CustomerID
		create.CustomerName = ""
	}

	ap, err := uc.creator.Execute(ctx, create)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Link + re-rank
	// --------------------------------------------------
	var e *models.WalkInQueueEntry
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		e, err = tx.Get(ctx, in.TenantID, in.EntryID)
		if err != nil {
			return err
		}
		to, err := domain.Next(domain.Status(e.Status), domain.ActionServe)
		if err != nil {
			return withID(err, e.ID)
		}

		stamp(e, to, now)
		e.AppointmentID = &ap.ID
		if err := tx.Update(ctx, e); err != nil {
			return err
		}
		return recalculate(ctx, tx, in.TenantID, e.BranchID, e.QueueDate)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(e, in.UserID, "queue_serving", map[string]any{
		"appointment_id": ap.ID,
		"stylist_id":     in.StylistID,
	})
	return e, nil
}

func withID(err error, id string) error {
	if e, ok := httperr.As(err); ok && len(e.EntityIDs) == 0 {
		e.EntityIDs = []string{id}
	}
	return err
}
