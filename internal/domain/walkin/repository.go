package walkin

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	GetBranch(ctx context.Context, tenantID, branchID string) (*models.Branch, error)
	GetServices(ctx context.Context, tenantID string, ids []string) ([]models.Service, error)
	CountActiveStylists(ctx context.Context, tenantID, branchID string) (int, error)

	MaxToken(ctx context.Context, tenantID, branchID, date string) (int, error)
	CountByStatus(ctx context.Context, tenantID, branchID, date string, statuses ...Status) (int, error)

	Create(ctx context.Context, e *models.WalkInQueueEntry) error
	Get(ctx context.Context, tenantID, entryID string) (*models.WalkInQueueEntry, error)
	Update(ctx context.Context, e *models.WalkInQueueEntry) error
	SetPosition(ctx context.Context, entryID string, position int) error

	// ListWaiting is ordered by creation time, oldest first.
	ListWaiting(ctx context.Context, tenantID, branchID, date string) ([]models.WalkInQueueEntry, error)
	// List is ordered by token number. An empty status lists every entry.
	List(ctx context.Context, tenantID, branchID, date string, status Status) ([]models.WalkInQueueEntry, error)
}
