package models

import "time"

type Service struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Category        string  `gorm:"size:50" json:"category"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	TaxRate         float64 `json:"tax_rate"`
	CommissionRate  float64 `json:"commission_rate"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
