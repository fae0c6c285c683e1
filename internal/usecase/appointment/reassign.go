package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReassignStylistInput struct {
	TenantID      string
	AppointmentID string
	StylistID     string
	UserID        string
}

// ReassignStylist moves a booked or confirmed appointment to another
// stylist, or assigns one to a booking made with assign-later.
type ReassignStylist struct {
	deps
}

func NewReassignStylist(
	repo domain.Repository,
	sink audit.Sink,
) *ReassignStylist {
	return &ReassignStylist{deps: newDeps(repo, sink)}
}

func (uc *ReassignStylist) Execute(
	ctx context.Context,
	in ReassignStylistInput,
) (*models.Appointment, error) {

	if in.StylistID == "" {
		return nil, httperr.ErrValidation("stylist_required", "stylist is required")
	}

	var (
		ap       *models.Appointment
		previous string
	)
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}
		if !domain.Can(domain.Status(ap.Status), domain.ActionReassign) {
			return httperr.ErrInvalidTransition(string(domain.ActionReassign), ap.Status, ap.ID)
		}

		s, err := activeStylist(ctx, tx, in.TenantID, ap.BranchID, in.StylistID)
		if err != nil {
			return err
		}

		if ap.StylistID != nil {
			previous = *ap.StylistID
		}
		ap.StylistID = &s.ID

		if err := assertNoConflict(ctx, tx, ap, ap.ScheduledDate, ap.ScheduledTime, ap.EndTime, ap.ID); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		if err := tx.SetLineStylist(ctx, ap.ID, s.ID); err != nil {
			return err
		}
		for i := range ap.Services {
			ap.Services[i].StylistID = &s.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ap, in.UserID, "appointment_reassigned", map[string]any{
		"from": previous,
		"to":   in.StylistID,
	})
	return ap, nil
}
