package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// StylistAssigner picks a stylist when the booking does not name one.
type StylistAssigner interface {
	AutoAssignStylist(ctx context.Context, q availability.StylistQuery) (*models.Staff, error)
}

// deps is shared by every appointment use case.
type deps struct {
	repo  domain.Repository
	audit audit.Sink
	now   func() time.Time
}

func newDeps(repo domain.Repository, sink audit.Sink) deps {
	return deps{repo: repo, audit: sink, now: time.Now}
}

// SetClock replaces time.Now, for tests.
func (d *deps) SetClock(now func() time.Time) {
	d.now = now
}

func (d *deps) dispatch(ap *models.Appointment, userID, action string, meta any) {
	if d.audit == nil {
		return
	}
	d.audit.Dispatch(audit.Event{
		TenantID: ap.TenantID,
		BranchID: ap.BranchID,
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: meta,
	})
}

// history writes one status-history row.
func history(ctx context.Context, tx domain.Repository, ap *models.Appointment, from *domain.Status, by, notes string) error {
	row := &models.AppointmentStatusHistory{
		AppointmentID: ap.ID,
		ToStatus:      ap.Status,
		ChangedBy:     by,
		Notes:         notes,
	}
	if from != nil {
		s := string(*from)
		row.FromStatus = &s
	}
	return tx.AddStatusHistory(ctx, row)
}

// activeStylist loads a stylist that can take bookings at the branch.
func activeStylist(ctx context.Context, repo domain.Repository, tenantID, branchID, stylistID string) (*models.Staff, error) {
	s, err := repo.GetStylist(ctx, tenantID, stylistID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive || s.BranchID != branchID {
		return nil, httperr.ErrBusiness("stylist_unavailable", "stylist does not work at this branch", stylistID)
	}
	return s, nil
}

// assertNoConflict fails with the overlapping bookings of the stylist.
func assertNoConflict(ctx context.Context, tx domain.Repository, ap *models.Appointment, date, start, end, excludeID string) error {
	if ap.StylistID == nil {
		return nil
	}
	existing, err := tx.ListActiveForStylist(ctx, ap.TenantID, *ap.StylistID, date)
	if err != nil {
		return err
	}
	if conflicts := domain.FindConflicts(existing, start, end, excludeID); len(conflicts) > 0 {
		summary, ids := domain.Summarize(conflicts)
		return httperr.ErrConflict("schedule_conflict", "stylist already has a booking in this slot", summary, ids...)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
