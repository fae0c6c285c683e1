package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type StylistScheduleGormRepository struct {
	db *gorm.DB
}

func NewStylistScheduleGormRepository(db *gorm.DB) *StylistScheduleGormRepository {
	return &StylistScheduleGormRepository{db: db}
}

func (r *StylistScheduleGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx schedule.Repository) error,
) error {
	return transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&StylistScheduleGormRepository{db: tx})
	})
}

func (r *StylistScheduleGormRepository) GetStylist(ctx context.Context, tenantID, stylistID string) (*models.Staff, error) {
	return findStylist(ctx, r.db, tenantID, stylistID)
}

func (r *StylistScheduleGormRepository) GetBranch(ctx context.Context, tenantID, branchID string) (*models.Branch, error) {
	return findBranch(ctx, r.db, tenantID, branchID)
}

// --------------------------------------------------
// Breaks
// --------------------------------------------------

func (r *StylistScheduleGormRepository) ListBreaks(
	ctx context.Context,
	tenantID string,
	stylistID string,
	activeOnly bool,
) ([]models.StylistBreak, error) {

	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stylist_id = ?", tenantID, stylistID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var breaks []models.StylistBreak
	if err := q.Order("start_time ASC").Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *StylistScheduleGormRepository) GetBreak(ctx context.Context, tenantID, breakID string) (*models.StylistBreak, error) {
	var b models.StylistBreak
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", breakID, tenantID).
		First(&b).Error; err != nil {
		return nil, notFound(err, "break_not_found", "break not found", breakID)
	}
	return &b, nil
}

func (r *StylistScheduleGormRepository) CreateBreak(ctx context.Context, b *models.StylistBreak) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *StylistScheduleGormRepository) UpdateBreak(ctx context.Context, b *models.StylistBreak) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Blocked slots
// --------------------------------------------------

func (r *StylistScheduleGormRepository) ListBlockedSlots(
	ctx context.Context,
	tenantID string,
	stylistID string,
	from string,
	to string,
) ([]models.StylistBlockedSlot, error) {

	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stylist_id = ?", tenantID, stylistID)
	if from != "" {
		q = q.Where("blocked_date >= ?", from)
	}
	if to != "" {
		q = q.Where("blocked_date <= ?", to)
	}

	var slots []models.StylistBlockedSlot
	if err := q.
		Order("blocked_date ASC").
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *StylistScheduleGormRepository) GetBlockedSlot(ctx context.Context, tenantID, slotID string) (*models.StylistBlockedSlot, error) {
	var s models.StylistBlockedSlot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", slotID, tenantID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "blocked_slot_not_found", "blocked slot not found", slotID)
	}
	return &s, nil
}

func (r *StylistScheduleGormRepository) CreateBlockedSlot(ctx context.Context, s *models.StylistBlockedSlot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// DeleteBlockedSlot is a soft delete.
func (r *StylistScheduleGormRepository) DeleteBlockedSlot(ctx context.Context, s *models.StylistBlockedSlot) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *StylistScheduleGormRepository) ListActiveAppointments(
	ctx context.Context,
	tenantID string,
	stylistID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := activeAppointments(
		forUpdate(r.db.WithContext(ctx)),
		tenantID, stylistID, date, domain.InactiveStatuses(),
	).Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Branch working hours
// --------------------------------------------------

func (r *StylistScheduleGormRepository) GetWorkingHours(ctx context.Context, tenantID, branchID string) ([]models.BranchWorkingHours, error) {
	var hours []models.BranchWorkingHours
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *StylistScheduleGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	tenantID string,
	branchID string,
	hours []models.BranchWorkingHours,
) error {

	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Delete(&models.BranchWorkingHours{}).Error; err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&hours).Error
}

// Compile-time check
var _ schedule.Repository = (*StylistScheduleGormRepository)(nil)
