package models

import "time"

type Branch struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
