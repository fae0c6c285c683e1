package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`
	BranchID string `gorm:"size:36;index;not null" json:"branch_id"`

	CustomerID    *string `gorm:"size:36;index" json:"customer_id"`
	CustomerName  string  `gorm:"size:100" json:"customer_name"`
	CustomerPhone string  `gorm:"size:20" json:"customer_phone"`

	ScheduledDate string  `gorm:"size:10;index:idx_appointment_stylist_day" json:"scheduled_date"`
	ScheduledTime string  `gorm:"size:5" json:"scheduled_time"`
	EndTime       string  `gorm:"size:5" json:"end_time"`
	TotalDuration int     `json:"total_duration"`
	StylistID     *string `gorm:"size:36;index:idx_appointment_stylist_day" json:"stylist_id"`

	Status      string `gorm:"size:20;index;default:'booked'" json:"status"`
	BookingType string `gorm:"size:20" json:"booking_type"`

	Subtotal      float64   `json:"subtotal"`
	TaxAmount     float64   `json:"tax_amount"`
	TotalAmount   float64   `json:"total_amount"`
	PriceLockedAt time.Time `json:"price_locked_at"`

	RescheduleCount       int     `json:"reschedule_count"`
	OriginalAppointmentID *string `gorm:"size:36;index" json:"original_appointment_id"`
	RescheduledFromID     *string `gorm:"size:36" json:"rescheduled_from_id"`

	HasConflict   bool   `json:"has_conflict"`
	ConflictNotes string `gorm:"type:text" json:"conflict_notes"`
	Notes         string `gorm:"size:255" json:"notes"`

	CheckedInAt *time.Time `json:"checked_in_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CancelledAt        *time.Time `json:"cancelled_at"`
	CancelledBy        *string    `gorm:"size:36" json:"cancelled_by"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	IsSalonCancelled   bool       `json:"is_salon_cancelled"`

	CreatedBy string `gorm:"size:36" json:"created_by"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AppointmentService is one service line. Price, tax, duration and
// commission are copied from the catalog at booking time and never refreshed.
type AppointmentService struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	AppointmentID string `gorm:"size:36;index;not null" json:"appointment_id"`
	ServiceID     string `gorm:"size:36;not null" json:"service_id"`
	ServiceName   string `gorm:"size:100" json:"service_name"`

	UnitPrice        float64 `json:"unit_price"`
	TaxAmount        float64 `json:"tax_amount"`
	DurationMinutes  int     `json:"duration_minutes"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`

	Status    string  `gorm:"size:20" json:"status"`
	StylistID *string `gorm:"size:36" json:"stylist_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentStatusHistory struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	AppointmentID string  `gorm:"size:36;index;not null" json:"appointment_id"`
	FromStatus    *string `gorm:"size:20" json:"from_status"`
	ToStatus      string  `gorm:"size:20;not null" json:"to_status"`
	ChangedBy     string  `gorm:"size:36" json:"changed_by"`
	Notes         string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
