package schedule

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	GetStylist(ctx context.Context, tenantID, stylistID string) (*models.Staff, error)
	GetBranch(ctx context.Context, tenantID, branchID string) (*models.Branch, error)

	ListBreaks(ctx context.Context, tenantID, stylistID string, activeOnly bool) ([]models.StylistBreak, error)
	GetBreak(ctx context.Context, tenantID, breakID string) (*models.StylistBreak, error)
	CreateBreak(ctx context.Context, b *models.StylistBreak) error
	UpdateBreak(ctx context.Context, b *models.StylistBreak) error

	ListBlockedSlots(ctx context.Context, tenantID, stylistID, from, to string) ([]models.StylistBlockedSlot, error)
	GetBlockedSlot(ctx context.Context, tenantID, slotID string) (*models.StylistBlockedSlot, error)
	CreateBlockedSlot(ctx context.Context, s *models.StylistBlockedSlot) error
	DeleteBlockedSlot(ctx context.Context, s *models.StylistBlockedSlot) error

	ListActiveAppointments(ctx context.Context, tenantID, stylistID, date string) ([]models.Appointment, error)

	GetWorkingHours(ctx context.Context, tenantID, branchID string) ([]models.BranchWorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, tenantID, branchID string, hours []models.BranchWorkingHours) error
}
