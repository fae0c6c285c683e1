package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	TenantID  string
	BranchID  string
	Date      string
	StylistID string
	Status    string
	Limit     int
	Offset    int
}

type Repository interface {
	// WithinTx runs fn atomically. The Repository handed to fn is bound to
	// the transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Catalog --------
	GetServices(ctx context.Context, tenantID string, ids []string) ([]models.Service, error)
	GetCustomer(ctx context.Context, tenantID, customerID string) (*models.Customer, error)
	GetStylist(ctx context.Context, tenantID, stylistID string) (*models.Staff, error)
	GetBranch(ctx context.Context, tenantID, branchID string) (*models.Branch, error)

	// -------- Appointment (conflict) --------
	ListActiveForStylist(ctx context.Context, tenantID, stylistID, date string) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	SetLineStylist(ctx context.Context, appointmentID, stylistID string) error
	AddStatusHistory(ctx context.Context, h *models.AppointmentStatusHistory) error

	// -------- Appointment (read) --------
	GetAppointment(ctx context.Context, tenantID, appointmentID string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
	ListStatusHistory(ctx context.Context, tenantID, appointmentID string) ([]models.AppointmentStatusHistory, error)
}
