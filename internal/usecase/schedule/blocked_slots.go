package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

type CreateBlockedSlotInput struct {
	TenantID  string
	StylistID string
	UserID    string

	Date      string
	IsFullDay bool
	StartTime string
	EndTime   string
	Reason    string
}

// ManageBlockedSlots handles one-off stylist absences.
type ManageBlockedSlots struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewManageBlockedSlots(repo domain.Repository, sink audit.Sink) *ManageBlockedSlots {
	return &ManageBlockedSlots{repo: repo, audit: sink}
}

// Create refuses to block time that already holds an active booking.
func (uc *ManageBlockedSlots) Create(ctx context.Context, in CreateBlockedSlotInput) (*models.StylistBlockedSlot, error) {
	if _, err := time.Parse(timeutil.DateLayout, in.Date); err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	slot := &models.StylistBlockedSlot{
		TenantID:    in.TenantID,
		StylistID:   in.StylistID,
		BlockedDate: in.Date,
		IsFullDay:   in.IsFullDay,
		Reason:      in.Reason,
		CreatedBy:   in.UserID,
	}
	if !in.IsFullDay {
		if err := domain.ValidateRange(in.StartTime, in.EndTime); err != nil {
			return nil, err
		}
		slot.StartTime = in.StartTime
		slot.EndTime = in.EndTime
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetStylist(ctx, in.TenantID, in.StylistID); err != nil {
			return err
		}

		// --------------------------------------------------
		// Existing blocks on the same day
		// --------------------------------------------------
		blocks, err := tx.ListBlockedSlots(ctx, in.TenantID, in.StylistID, in.Date, in.Date)
		if err != nil {
			return err
		}
		var clash []string
		for _, b := range blocks {
			if b.IsFullDay || slot.IsFullDay || timeutil.TimesOverlap(b.StartTime, b.EndTime, slot.StartTime, slot.EndTime) {
				clash = append(clash, b.ID)
			}
		}
		if len(clash) > 0 {
			return httperr.ErrValidation("block_overlap", "blocked slot overlaps an existing one", clash...)
		}

		// --------------------------------------------------
		// Bookings
		// --------------------------------------------------
		aps, err := tx.ListActiveAppointments(ctx, in.TenantID, in.StylistID, in.Date)
		if err != nil {
			return err
		}
		var booked []string
		for _, ap := range aps {
			if domain.BlockCovers(*slot, ap.ScheduledTime, ap.EndTime) {
				booked = append(booked, ap.ID)
			}
		}
		if len(booked) > 0 {
			return httperr.ErrBusiness("slot_has_appointments", "the period already has appointments", booked...)
		}

		return tx.CreateBlockedSlot(ctx, slot)
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, in.TenantID, in.UserID, "blocked_slot_created", "stylist_blocked_slot", slot.ID)
	return slot, nil
}

// List returns blocks between from and to inclusive. Empty bounds are open.
func (uc *ManageBlockedSlots) List(ctx context.Context, tenantID, stylistID, from, to string) ([]models.StylistBlockedSlot, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(timeutil.DateLayout, d); err != nil {
			return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
		}
	}
	return uc.repo.ListBlockedSlots(ctx, tenantID, stylistID, from, to)
}

func (uc *ManageBlockedSlots) Delete(ctx context.Context, tenantID, slotID, userID string) error {
	slot, err := uc.repo.GetBlockedSlot(ctx, tenantID, slotID)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteBlockedSlot(ctx, slot); err != nil {
		return err
	}

	dispatch(uc.audit, tenantID, userID, "blocked_slot_deleted", "stylist_blocked_slot", slot.ID)
	return nil
}
