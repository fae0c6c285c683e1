package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

type RescheduleInput struct {
	TenantID      string
	AppointmentID string
	UserID        string

	NewDate   string
	NewTime   string
	StylistID string
	Reason    string
}

type RescheduleResult struct {
	Original        *models.Appointment `json:"original"`
	Appointment     *models.Appointment `json:"appointment"`
	RescheduleCount int                 `json:"reschedule_count"`
}

// RescheduleAppointment supersedes an appointment: the original is frozen as
// rescheduled and a new booked record takes over with the same locked price.
type RescheduleAppointment struct {
	deps
	limit int
}

func NewRescheduleAppointment(
	repo domain.Repository,
	sink audit.Sink,
	limit int,
) *RescheduleAppointment {
	if limit <= 0 {
		limit = domain.MaxReschedules
	}
	return &RescheduleAppointment{
		deps:  newDeps(repo, sink),
		limit: limit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*RescheduleResult, error) {

	if _, err := time.Parse(timeutil.DateLayout, in.NewDate); err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	if !timeutil.IsValidHM(in.NewTime) {
		return nil, httperr.ErrValidation("invalid_time", "time must be HH:mm")
	}

	var res RescheduleResult
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Original
		// --------------------------------------------------
		orig, err := tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}
		if err := domain.CanReschedule(orig, uc.limit); err != nil {
			return err
		}

		stylistID := orig.StylistID
		if in.StylistID != "" {
			s, err := activeStylist(ctx, tx, in.TenantID, orig.BranchID, in.StylistID)
			if err != nil {
				return err
			}
			stylistID = &s.ID
		}

		end, err := timeutil.AddMinutes(in.NewTime, orig.TotalDuration)
		if err != nil {
			return httperr.ErrValidation("invalid_time", err.Error())
		}

		// --------------------------------------------------
		// 2️⃣ Replacement record
		// --------------------------------------------------
		next := &models.Appointment{
			TenantID:              orig.TenantID,
			BranchID:              orig.BranchID,
			CustomerID:            orig.CustomerID,
			CustomerName:          orig.CustomerName,
			CustomerPhone:         orig.CustomerPhone,
			ScheduledDate:         in.NewDate,
			ScheduledTime:         in.NewTime,
			EndTime:               end,
			StylistID:             stylistID,
			Status:                string(domain.InitialStatus()),
			BookingType:           orig.BookingType,
			RescheduleCount:       orig.RescheduleCount + 1,
			OriginalAppointmentID: strPtr(domain.RootID(orig)),
			RescheduledFromID:     strPtr(orig.ID),
			Notes:                 orig.Notes,
			CreatedBy:             in.UserID,
		}
		domain.CopyLockedPrice(orig, next, stylistID)

		if err := assertNoConflict(ctx, tx, next, in.NewDate, in.NewTime, end, orig.ID); err != nil {
			return err
		}

		// --------------------------------------------------
		// 3️⃣ Freeze the original, persist the new one
		// --------------------------------------------------
		from, err := domain.Transition(orig, domain.ActionReschedule, uc.now())
		if err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, orig); err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, next); err != nil {
			return err
		}

		if err := history(ctx, tx, orig, &from, in.UserID, rescheduleNote("rescheduled to "+next.ID, in.Reason)); err != nil {
			return err
		}
		if err := history(ctx, tx, next, nil, in.UserID, rescheduleNote("rescheduled from "+orig.ID, in.Reason)); err != nil {
			return err
		}

		res = RescheduleResult{
			Original:        orig,
			Appointment:     next,
			RescheduleCount: next.RescheduleCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(res.Appointment, in.UserID, "appointment_rescheduled", map[string]any{
		"from":             res.Original.ID,
		"reason":           in.Reason,
		"reschedule_count": res.RescheduleCount,
	})
	return &res, nil
}

func rescheduleNote(note, reason string) string {
	if reason == "" {
		return note
	}
	return note + ": " + reason
}
