package availability

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Reader is the read-only view the availability engine needs.
type Reader interface {
	// GetWorkingHours returns nil when the branch has no row for the weekday.
	GetWorkingHours(ctx context.Context, tenantID, branchID string, dayOfWeek int) (*models.BranchWorkingHours, error)

	// ListBreaks returns active breaks for the weekday plus every-day breaks.
	ListBreaks(ctx context.Context, tenantID, stylistID string, dayOfWeek int) ([]models.StylistBreak, error)
	ListBlockedSlots(ctx context.Context, tenantID, stylistID, date string) ([]models.StylistBlockedSlot, error)
	ListActiveAppointments(ctx context.Context, tenantID, stylistID, date string) ([]models.Appointment, error)

	// ListStylists returns active stylists of the branch ordered by id. An
	// empty gender matches everyone.
	ListStylists(ctx context.Context, tenantID, branchID, gender string) ([]models.Staff, error)
	GetServices(ctx context.Context, tenantID string, ids []string) ([]models.Service, error)
	CountAppointmentsByStylist(ctx context.Context, tenantID, date string, stylistIDs []string) (map[string]int, error)
}
