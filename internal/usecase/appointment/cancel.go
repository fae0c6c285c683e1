package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointmentInput struct {
	TenantID       string
	AppointmentID  string
	UserID         string
	Reason         string
	SalonCancelled bool
}

type CancelAppointment struct {
	deps
}

func NewCancelAppointment(
	repo domain.Repository,
	sink audit.Sink,
) *CancelAppointment {
	return &CancelAppointment{deps: newDeps(repo, sink)}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}

		from, err := domain.Cancel(ap, domain.Cancellation{
			Reason:         in.Reason,
			CancelledBy:    in.UserID,
			SalonCancelled: in.SalonCancelled,
		}, uc.now())
		if err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		return history(ctx, tx, ap, &from, in.UserID, in.Reason)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ap, in.UserID, "appointment_cancelled", map[string]any{
		"reason":          in.Reason,
		"salon_cancelled": in.SalonCancelled,
	})
	return ap, nil
}
