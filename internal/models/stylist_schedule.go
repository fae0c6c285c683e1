package models

import (
	"time"

	"gorm.io/gorm"
)

// StylistBreak recurs weekly. A nil DayOfWeek applies to every day.
type StylistBreak struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	TenantID  string `gorm:"size:36;not null" json:"tenant_id"`
	StylistID string `gorm:"size:36;index;not null" json:"stylist_id"`

	DayOfWeek *int   `json:"day_of_week"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Label     string `gorm:"size:100" json:"label"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StylistBlockedSlot is a one-off absence, either the whole day or a window.
type StylistBlockedSlot struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	TenantID  string `gorm:"size:36;not null" json:"tenant_id"`
	StylistID string `gorm:"size:36;index:idx_blocked_stylist_day;not null" json:"stylist_id"`

	BlockedDate string `gorm:"size:10;index:idx_blocked_stylist_day" json:"blocked_date"`
	IsFullDay   bool   `json:"is_full_day"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	Reason      string `gorm:"size:255" json:"reason"`
	CreatedBy   string `gorm:"size:36" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
