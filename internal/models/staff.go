package models

import "time"

const (
	RoleStylist = "stylist"
	RoleManager = "manager"
)

type Staff struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`
	BranchID string `gorm:"size:36;index;not null" json:"branch_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:20;default:'stylist'" json:"role"`
	Gender   string `gorm:"size:10" json:"gender"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
