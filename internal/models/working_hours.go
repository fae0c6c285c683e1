package models

import "time"

// BranchWorkingHours is one weekday of a branch schedule. A weekday without a
// row is closed.
type BranchWorkingHours struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;not null" json:"tenant_id"`
	BranchID string `gorm:"size:36;uniqueIndex:idx_branch_weekday;not null" json:"branch_id"`

	DayOfWeek int    `gorm:"uniqueIndex:idx_branch_weekday" json:"day_of_week"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsClosed  bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
