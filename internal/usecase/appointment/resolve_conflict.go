package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ResolveConflictInput struct {
	TenantID      string
	AppointmentID string
	UserID        string
	Notes         string
}

// ResolveConflict clears the conflict flag. The status is left alone.
type ResolveConflict struct {
	deps
}

func NewResolveConflict(
	repo domain.Repository,
	sink audit.Sink,
) *ResolveConflict {
	return &ResolveConflict{deps: newDeps(repo, sink)}
}

func (uc *ResolveConflict) Execute(
	ctx context.Context,
	in ResolveConflictInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}
		if !ap.HasConflict {
			return httperr.ErrBusiness("no_conflict", "appointment has no conflict to resolve", ap.ID)
		}

		ap.HasConflict = false
		note := "resolved"
		if in.Notes != "" {
			note += ": " + in.Notes
		}
		ap.ConflictNotes = appendNote(ap.ConflictNotes, note)
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ap, in.UserID, "conflict_resolved", map[string]any{"notes": in.Notes})
	return ap, nil
}
