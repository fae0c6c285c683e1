package models

import "time"

const (
	BookingStatusActive  = "active"
	BookingStatusBlocked = "blocked"
)

type Customer struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	Phone         string `gorm:"size:20;index" json:"phone"`
	Email         string `gorm:"size:100" json:"email"`
	BookingStatus string `gorm:"size:20;default:'active'" json:"booking_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
