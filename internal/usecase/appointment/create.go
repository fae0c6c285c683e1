package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID string
	BranchID string
	UserID   string

	CustomerID    string
	CustomerName  string
	CustomerPhone string

	ServiceIDs  []string
	StylistID   string
	AssignLater bool

	// GenderPreference narrows auto-assignment. Blank or "any" means none.
	GenderPreference string

	Date        string
	Time        string
	BookingType domain.BookingType
	Notes       string

	// ForceOverride books over existing appointments. ConflictActions maps
	// each conflicting appointment id to keep or cancel; missing ids keep.
	ForceOverride   bool
	OverrideReason  string
	ConflictActions map[string]domain.ConflictAction
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps
	assigner StylistAssigner
}

func NewCreateAppointment(
	repo domain.Repository,
	assigner StylistAssigner,
	sink audit.Sink,
) *CreateAppointment {
	return &CreateAppointment{
		deps:     newDeps(repo, sink),
		assigner: assigner,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBranch(ctx, in.TenantID, in.BranchID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Services and price lock
	// --------------------------------------------------
	services, err := uc.repo.GetServices(ctx, in.TenantID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingServices(in.ServiceIDs, services); len(missing) > 0 {
		return nil, httperr.ErrNotFound("service_not_found", "service not found or inactive", missing...)
	}

	// --------------------------------------------------
	// 3️⃣ Customer
	// --------------------------------------------------
	ap := &models.Appointment{
		TenantID:      in.TenantID,
		BranchID:      in.BranchID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		ScheduledDate: in.Date,
		ScheduledTime: in.Time,
		Status:        string(domain.InitialStatus()),
		BookingType:   string(in.BookingType),
		Notes:         in.Notes,
		CreatedBy:     in.UserID,
	}

	if in.CustomerID != "" {
		c, err := uc.repo.GetCustomer(ctx, in.TenantID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c.BookingStatus == models.BookingStatusBlocked && in.BookingType == domain.BookingOnline {
			return nil, httperr.ErrBusiness("customer_blocked", "customer is blocked from online booking", c.ID)
		}
		ap.CustomerID = &c.ID
		ap.CustomerName = c.Name
		if ap.CustomerPhone == "" {
			ap.CustomerPhone = c.Phone
		}
	}

	quote := domain.LockPrices(services, nil, uc.now())
	if quote.TotalDuration <= 0 {
		return nil, httperr.ErrValidation("invalid_duration", "services must take at least one minute", in.ServiceIDs...)
	}
	quote.Apply(ap)

	end, err := timeutil.AddMinutes(in.Time, ap.TotalDuration)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_time", err.Error())
	}
	ap.EndTime = end

	// --------------------------------------------------
	// 4️⃣ Stylist
	// --------------------------------------------------
	if !in.AssignLater {
		stylistID, err := uc.resolveStylist(ctx, in, ap)
		if err != nil {
			return nil, err
		}
		ap.StylistID = &stylistID
		for i := range ap.Services {
			ap.Services[i].StylistID = &stylistID
		}
	}

	// --------------------------------------------------
	// 5️⃣ Conflicts + persistence (one transaction)
	// --------------------------------------------------
	var overridden []models.Appointment
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		overridden = nil

		if ap.StylistID != nil {
			existing, err := tx.ListActiveForStylist(ctx, in.TenantID, *ap.StylistID, in.Date)
			if err != nil {
				return err
			}

			conflicts := domain.FindConflicts(existing, ap.ScheduledTime, ap.EndTime, "")
			if len(conflicts) > 0 {
				if !in.ForceOverride {
					summary, ids := domain.Summarize(conflicts)
					return httperr.ErrConflict(
						"schedule_conflict",
						"stylist already has a booking in this slot",
						summary,
						ids...,
					)
				}
				if err := uc.override(ctx, tx, ap, conflicts, in); err != nil {
					return err
				}
				overridden = conflicts
			}
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		return history(ctx, tx, ap, nil, in.UserID, "created")
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Audit (after commit, never blocks the booking)
	// --------------------------------------------------
	uc.dispatch(ap, in.UserID, "appointment_created", map[string]any{
		"booking_type": ap.BookingType,
		"date":         ap.ScheduledDate,
		"time":         ap.ScheduledTime,
	})
	if len(overridden) > 0 {
		actions := make(map[string]domain.ConflictAction, len(overridden))
		for _, c := range overridden {
			actions[c.ID] = actionFor(in.ConflictActions, c.ID)
		}
		uc.dispatch(ap, in.UserID, "appointment_override", map[string]any{
			"reason":  in.OverrideReason,
			"actions": actions,
		})
	}

	return ap, nil
}

// resolveStylist returns the requested stylist or an auto-assigned one.
func (uc *CreateAppointment) resolveStylist(
	ctx context.Context,
	in CreateAppointmentInput,
	ap *models.Appointment,
) (string, error) {

	if in.StylistID != "" {
		s, err := activeStylist(ctx, uc.repo, in.TenantID, in.BranchID, in.StylistID)
		if err != nil {
			return "", err
		}
		return s.ID, nil
	}

	if uc.assigner == nil {
		return "", httperr.ErrValidation("stylist_required", "stylist is required")
	}

	s, err := uc.assigner.AutoAssignStylist(ctx, availability.StylistQuery{
		TenantID:         in.TenantID,
		BranchID:         in.BranchID,
		Date:             in.Date,
		Time:             in.Time,
		Duration:         ap.TotalDuration,
		GenderPreference: in.GenderPreference,
	})
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", httperr.ErrBusiness("no_stylist_available", "no stylist is available for this slot")
	}
	return s.ID, nil
}

// override applies the caller's keep/cancel decision to every conflict. Kept
// appointments and the new one are flagged as conflicted.
func (uc *CreateAppointment) override(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	conflicts []models.Appointment,
	in CreateAppointmentInput,
) error {

	now := uc.now()
	var kept []string

	for i := range conflicts {
		other := &conflicts[i]

		switch actionFor(in.ConflictActions, other.ID) {
		case domain.ConflictCancel:
			from, err := domain.Cancel(other, domain.Cancellation{
				Reason:         "override: " + in.OverrideReason,
				CancelledBy:    in.UserID,
				SalonCancelled: true,
			}, now)
			if err != nil {
				return err
			}
			if err := tx.UpdateAppointment(ctx, other); err != nil {
				return err
			}
			if err := history(ctx, tx, other, &from, in.UserID, "cancelled by override"); err != nil {
				return err
			}

		default:
			other.HasConflict = true
			other.ConflictNotes = appendNote(other.ConflictNotes, "overlapped by forced booking: "+in.OverrideReason)
			if err := tx.UpdateAppointment(ctx, other); err != nil {
				return err
			}
			kept = append(kept, other.ID)
		}
	}

	if len(kept) > 0 {
		ap.HasConflict = true
		ap.ConflictNotes = fmt.Sprintf("override: %s; overlaps %s", in.OverrideReason, strings.Join(kept, ", "))
	}
	return nil
}

// ======================================================
// VALIDATION
// ======================================================

func validateCreate(in *CreateAppointmentInput) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)

	if in.TenantID == "" || in.BranchID == "" {
		return httperr.ErrValidation("branch_required", "tenant and branch are required")
	}
	if (in.CustomerID == "") == (in.CustomerName == "") {
		return httperr.ErrValidation("customer_required", "exactly one of customer id or customer name is required")
	}

	if in.BookingType == "" {
		in.BookingType = domain.BookingOnline
	}
	if !in.BookingType.Valid() {
		return httperr.ErrValidation("invalid_booking_type", "booking type must be online, phone or walk_in")
	}
	if in.BookingType == domain.BookingWalkIn && (in.AssignLater || in.StylistID == "") {
		return httperr.ErrValidation("walk_in_requires_stylist", "walk-in bookings need a stylist at creation")
	}
	if in.AssignLater && in.StylistID != "" {
		return httperr.ErrValidation("assign_later_with_stylist", "assign later cannot be combined with a stylist")
	}

	if _, err := time.Parse(timeutil.DateLayout, in.Date); err != nil {
		return httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	if !timeutil.IsValidHM(in.Time) {
		return httperr.ErrValidation("invalid_time", "time must be HH:mm")
	}
	if len(in.ServiceIDs) == 0 {
		return httperr.ErrValidation("services_required", "at least one service is required")
	}

	if in.ForceOverride {
		if strings.TrimSpace(in.OverrideReason) == "" {
			return httperr.ErrValidation("override_reason_required", "a reason is required to force a booking")
		}
		for id, a := range in.ConflictActions {
			if !a.Valid() {
				return httperr.ErrValidation("invalid_conflict_action", "conflict action must be keep or cancel", id)
			}
		}
	}
	return nil
}

func missingServices(ids []string, found []models.Service) []string {
	have := make(map[string]struct{}, len(found))
	for _, s := range found {
		have[s.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func actionFor(actions map[string]domain.ConflictAction, id string) domain.ConflictAction {
	if a, ok := actions[id]; ok {
		return a
	}
	return domain.ConflictKeep
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}
