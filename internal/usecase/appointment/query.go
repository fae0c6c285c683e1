package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	if f.Date != "" {
		if _, err := time.Parse(timeutil.DateLayout, f.Date); err != nil {
			return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
		}
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	return uc.repo.ListAppointments(ctx, f)
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	tenantID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, tenantID, appointmentID)
}

// GetStatusHistory returns the transitions of one appointment, oldest first.
func (uc *GetAppointment) GetStatusHistory(
	ctx context.Context,
	tenantID string,
	appointmentID string,
) ([]models.AppointmentStatusHistory, error) {
	return uc.repo.ListStatusHistory(ctx, tenantID, appointmentID)
}
