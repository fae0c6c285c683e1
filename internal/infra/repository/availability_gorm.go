package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityGormReader struct {
	db *gorm.DB
}

func NewAvailabilityGormReader(db *gorm.DB) *AvailabilityGormReader {
	return &AvailabilityGormReader{db: db}
}

func (r *AvailabilityGormReader) GetWorkingHours(
	ctx context.Context,
	tenantID string,
	branchID string,
	dayOfWeek int,
) (*models.BranchWorkingHours, error) {

	var wh models.BranchWorkingHours
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND day_of_week = ?", tenantID, branchID, dayOfWeek).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AvailabilityGormReader) ListBreaks(
	ctx context.Context,
	tenantID string,
	stylistID string,
	dayOfWeek int,
) ([]models.StylistBreak, error) {

	var breaks []models.StylistBreak
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND stylist_id = ? AND is_active = ? AND (day_of_week = ? OR day_of_week IS NULL)",
			tenantID, stylistID, true, dayOfWeek,
		).
		Order("start_time ASC").
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *AvailabilityGormReader) ListBlockedSlots(
	ctx context.Context,
	tenantID string,
	stylistID string,
	date string,
) ([]models.StylistBlockedSlot, error) {

	var slots []models.StylistBlockedSlot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stylist_id = ? AND blocked_date = ?", tenantID, stylistID, date).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AvailabilityGormReader) ListActiveAppointments(
	ctx context.Context,
	tenantID string,
	stylistID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := activeAppointments(
		r.db.WithContext(ctx),
		tenantID, stylistID, date, domain.InactiveStatuses(),
	).Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AvailabilityGormReader) ListStylists(
	ctx context.Context,
	tenantID string,
	branchID string,
	gender string,
) ([]models.Staff, error) {

	q := activeStylists(r.db.WithContext(ctx), tenantID, branchID)
	if gender != "" {
		q = q.Where("gender = ?", gender)
	}

	var staff []models.Staff
	if err := q.Order("id ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *AvailabilityGormReader) GetServices(
	ctx context.Context,
	tenantID string,
	ids []string,
) ([]models.Service, error) {
	return findServices(ctx, r.db, tenantID, ids)
}

func (r *AvailabilityGormReader) CountAppointmentsByStylist(
	ctx context.Context,
	tenantID string,
	date string,
	stylistIDs []string,
) (map[string]int, error) {

	out := make(map[string]int, len(stylistIDs))
	if len(stylistIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		StylistID string
		Total     int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("stylist_id, COUNT(*) AS total").
		Where(
			"tenant_id = ? AND scheduled_date = ? AND stylist_id IN ? AND status NOT IN ?",
			tenantID, date, stylistIDs, domain.InactiveStatuses(),
		).
		Group("stylist_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.StylistID] = row.Total
	}
	return out, nil
}

// Compile-time check
var _ availability.Reader = (*AvailabilityGormReader)(nil)
