package schedule

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CreateBreakInput struct {
	TenantID  string
	StylistID string
	UserID    string

	// DayOfWeek is 0 (Sunday) to 6. Nil repeats every day.
	DayOfWeek *int
	StartTime string
	EndTime   string
	Label     string
}

// ManageBreaks creates, lists and deactivates recurring stylist breaks.
type ManageBreaks struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewManageBreaks(repo domain.Repository, sink audit.Sink) *ManageBreaks {
	return &ManageBreaks{repo: repo, audit: sink}
}

func (uc *ManageBreaks) Create(ctx context.Context, in CreateBreakInput) (*models.StylistBreak, error) {
	if err := domain.ValidateRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if in.DayOfWeek != nil && (*in.DayOfWeek < 0 || *in.DayOfWeek > 6) {
		return nil, httperr.ErrValidation("invalid_day_of_week", "day of week must be between 0 and 6")
	}

	b := &models.StylistBreak{
		TenantID:  in.TenantID,
		StylistID: in.StylistID,
		DayOfWeek: in.DayOfWeek,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Label:     in.Label,
		IsActive:  true,
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetStylist(ctx, in.TenantID, in.StylistID); err != nil {
			return err
		}

		existing, err := tx.ListBreaks(ctx, in.TenantID, in.StylistID, true)
		if err != nil {
			return err
		}
		var clash []string
		for _, other := range existing {
			if domain.BreaksCollide(*b, other) {
				clash = append(clash, other.ID)
			}
		}
		if len(clash) > 0 {
			return httperr.ErrValidation("break_overlap", "break overlaps an existing break", clash...)
		}

		return tx.CreateBreak(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, in.TenantID, in.UserID, "break_created", "stylist_break", b.ID)
	return b, nil
}

func (uc *ManageBreaks) List(ctx context.Context, tenantID, stylistID string, activeOnly bool) ([]models.StylistBreak, error) {
	if _, err := uc.repo.GetStylist(ctx, tenantID, stylistID); err != nil {
		return nil, err
	}
	return uc.repo.ListBreaks(ctx, tenantID, stylistID, activeOnly)
}

// Deactivate keeps the row for history. Deactivating twice is a no-op.
func (uc *ManageBreaks) Deactivate(ctx context.Context, tenantID, breakID, userID string) (*models.StylistBreak, error) {
	b, err := uc.repo.GetBreak(ctx, tenantID, breakID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return b, nil
	}

	b.IsActive = false
	if err := uc.repo.UpdateBreak(ctx, b); err != nil {
		return nil, err
	}

	dispatch(uc.audit, tenantID, userID, "break_deactivated", "stylist_break", b.ID)
	return b, nil
}

func dispatch(sink audit.Sink, tenantID, userID, action, entity, id string) {
	if sink == nil {
		return
	}
	sink.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
	})
}
