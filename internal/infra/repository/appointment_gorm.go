package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	tenantID string,
	ids []string,
) ([]models.Service, error) {
	return findServices(ctx, r.db, tenantID, ids)
}

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	tenantID string,
	customerID string,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "customer_not_found", "customer not found", customerID)
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetStylist(
	ctx context.Context,
	tenantID string,
	stylistID string,
) (*models.Staff, error) {
	return findStylist(ctx, r.db, tenantID, stylistID)
}

func (r *AppointmentGormRepository) GetBranch(
	ctx context.Context,
	tenantID string,
	branchID string,
) (*models.Branch, error) {
	return findBranch(ctx, r.db, tenantID, branchID)
}

// --------------------------------------------------
// Appointment (conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForStylist(
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
// Appointment (write)
// --------------------------------------------------

// CreateAppointment inserts the appointment together with its service lines.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) SetLineStylist(
	ctx context.Context,
	appointmentID string,
	stylistID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.AppointmentService{}).
		Where("appointment_id = ?", appointmentID).
		Update("stylist_id", stylistID).Error
}

func (r *AppointmentGormRepository) AddStatusHistory(
	ctx context.Context,
	h *models.AppointmentStatusHistory,
) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantID string,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "appointment not found", appointmentID)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services").
		Where("tenant_id = ?", f.TenantID)

	if f.BranchID != "" {
		q = q.Where("branch_id = ?", f.BranchID)
	}
	if f.Date != "" {
		q = q.Where("scheduled_date = ?", f.Date)
	}
	if f.StylistID != "" {
		q = q.Where("stylist_id = ?", f.StylistID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var aps []models.Appointment
	if err := q.
		Order("scheduled_date ASC").
		Order("scheduled_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListStatusHistory(
	ctx context.Context,
	tenantID string,
	appointmentID string,
) ([]models.AppointmentStatusHistory, error) {

	if _, err := r.GetAppointment(ctx, tenantID, appointmentID); err != nil {
		return nil, err
	}

	var rows []models.AppointmentStatusHistory
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
