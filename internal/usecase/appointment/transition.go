package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TransitionInput struct {
	TenantID      string
	AppointmentID string
	Action        domain.Action
	UserID        string
	Notes         string
}

// TransitionAppointment runs the plain status steps: confirm, check in,
// start, complete and no-show. Cancel and reschedule carry extra data and
// have their own use cases.
type TransitionAppointment struct {
	deps
}

func NewTransitionAppointment(
	repo domain.Repository,
	sink audit.Sink,
) *TransitionAppointment {
	return &TransitionAppointment{deps: newDeps(repo, sink)}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	switch in.Action {
	case domain.ActionConfirm, domain.ActionCheckIn, domain.ActionStart,
		domain.ActionComplete, domain.ActionNoShow:
	default:
		return nil, httperr.ErrValidation("unsupported_action", "unsupported action "+string(in.Action))
	}

	var ap *models.Appointment
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}

		from, err := domain.Transition(ap, in.Action, uc.now())
		if err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		return history(ctx, tx, ap, &from, in.UserID, in.Notes)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ap, in.UserID, "appointment_"+string(in.Action), nil)
	return ap, nil
}

// Confirm, CheckIn, Start, Complete and MarkNoShow are shorthands for
// Execute.

func (uc *TransitionAppointment) Confirm(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error) {
	return uc.Execute(ctx, TransitionInput{TenantID: tenantID, AppointmentID: id, Action: domain.ActionConfirm, UserID: userID})
}

func (uc *TransitionAppointment) CheckIn(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error) {
	return uc.Execute(ctx, TransitionInput{TenantID: tenantID, AppointmentID: id, Action: domain.ActionCheckIn, UserID: userID})
}

func (uc *TransitionAppointment) Start(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error) {
	return uc.Execute(ctx, TransitionInput{TenantID: tenantID, AppointmentID: id, Action: domain.ActionStart, UserID: userID})
}

func (uc *TransitionAppointment) Complete(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error) {
	return uc.Execute(ctx, TransitionInput{TenantID: tenantID, AppointmentID: id, Action: domain.ActionComplete, UserID: userID})
}

func (uc *TransitionAppointment) MarkNoShow(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error) {
	return uc.Execute(ctx, TransitionInput{TenantID: tenantID, AppointmentID: id, Action: domain.ActionNoShow, UserID: userID})
}
