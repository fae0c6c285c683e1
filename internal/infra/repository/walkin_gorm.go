package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WalkInGormRepository struct {
	db *gorm.DB
}

func NewWalkInGormRepository(db *gorm.DB) *WalkInGormRepository {
	return &WalkInGormRepository{db: db}
}

func (r *WalkInGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx walkin.Repository) error,
) error {
	return transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&WalkInGormRepository{db: tx})
	})
}

func (r *WalkInGormRepository) GetBranch(ctx context.Context, tenantID, branchID string) (*models.Branch, error) {
	return findBranch(ctx, r.db, tenantID, branchID)
}

func (r *WalkInGormRepository) GetServices(ctx context.Context, tenantID string, ids []string) ([]models.Service, error) {
	return findServices(ctx, r.db, tenantID, ids)
}

func (r *WalkInGormRepository) CountActiveStylists(ctx context.Context, tenantID, branchID string) (int, error) {
	var n int64
	if err := activeStylists(r.db.WithContext(ctx), tenantID, branchID).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// MaxToken also sees soft-deleted entries so a token is never handed out
// twice in a day.
func (r *WalkInGormRepository) MaxToken(ctx context.Context, tenantID, branchID, date string) (int, error) {
	var top int
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.WalkInQueueEntry{}).
		Select("COALESCE(MAX(token_number), 0)").
		Where("tenant_id = ? AND branch_id = ? AND queue_date = ?", tenantID, branchID, date).
		Scan(&top).Error; err != nil {
		return 0, err
	}
	return top, nil
}

func (r *WalkInGormRepository) CountByStatus(
	ctx context.Context,
	tenantID string,
	branchID string,
	date string,
	statuses ...walkin.Status,
) (int, error) {

	q := r.db.WithContext(ctx).
		Model(&models.WalkInQueueEntry{}).
		Where("tenant_id = ? AND branch_id = ? AND queue_date = ?", tenantID, branchID, date)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *WalkInGormRepository) Create(ctx context.Context, e *models.WalkInQueueEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *WalkInGormRepository) Get(ctx context.Context, tenantID, entryID string) (*models.WalkInQueueEntry, error) {
	var e models.WalkInQueueEntry
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("id = ? AND tenant_id = ?", entryID, tenantID).
		First(&e).Error; err != nil {
		return nil, notFound(err, "queue_entry_not_found", "queue entry not found", entryID)
	}
	return &e, nil
}

func (r *WalkInGormRepository) Update(ctx context.Context, e *models.WalkInQueueEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *WalkInGormRepository) SetPosition(ctx context.Context, entryID string, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.WalkInQueueEntry{}).
		Where("id = ?", entryID).
		Update("position", position).Error
}

func (r *WalkInGormRepository) ListWaiting(ctx context.Context, tenantID, branchID, date string) ([]models.WalkInQueueEntry, error) {
	var entries []models.WalkInQueueEntry
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND branch_id = ? AND queue_date = ? AND status = ?",
			tenantID, branchID, date, string(walkin.StatusWaiting),
		).
		Order("created_at ASC").
		Order("token_number ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WalkInGormRepository) List(
	ctx context.Context,
	tenantID string,
	branchID string,
	date string,
	status walkin.Status,
) ([]models.WalkInQueueEntry, error) {

	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND queue_date = ?", tenantID, branchID, date)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var entries []models.WalkInQueueEntry
	if err := q.Order("token_number ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func statusStrings(statuses []walkin.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ walkin.Repository = (*WalkInGormRepository)(nil)
