package models

import (
	"time"

	"gorm.io/gorm"
)

type WalkInQueueEntry struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;not null" json:"tenant_id"`
	BranchID string `gorm:"size:36;uniqueIndex:idx_queue_token;not null" json:"branch_id"`

	// QueueDate is the branch-local calendar day, YYYY-MM-DD.
	QueueDate   string `gorm:"size:10;uniqueIndex:idx_queue_token" json:"queue_date"`
	TokenNumber int    `gorm:"uniqueIndex:idx_queue_token" json:"token_number"`

	CustomerID    *string `gorm:"size:36" json:"customer_id"`
	CustomerName  string  `gorm:"size:100" json:"customer_name"`
	CustomerPhone string  `gorm:"size:20" json:"customer_phone"`

	ServiceIDs         []string `gorm:"serializer:json;type:text" json:"service_ids"`
	PreferredStylistID *string  `gorm:"size:36" json:"preferred_stylist_id"`
	GenderPreference   string   `gorm:"size:10" json:"gender_preference"`

	Status        string  `gorm:"size:20;index" json:"status"`
	Position      int     `json:"position"`
	EstimatedWait int     `json:"estimated_wait"`
	AppointmentID *string `gorm:"size:36" json:"appointment_id"`

	CalledAt    *time.Time `json:"called_at"`
	ServingAt   *time.Time `json:"serving_at"`
	CompletedAt *time.Time `json:"completed_at"`
	LeftAt      *time.Time `json:"left_at"`

	CreatedBy string `gorm:"size:36" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
