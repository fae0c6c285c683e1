package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty primary key before insert.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (b *Branch) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}

func (w *BranchWorkingHours) BeforeCreate(*gorm.DB) error {
	newID(&w.ID)
	return nil
}

func (s *Staff) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	newID(&c.ID)
	return nil
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}

func (l *AppointmentService) BeforeCreate(*gorm.DB) error {
	newID(&l.ID)
	return nil
}

func (h *AppointmentStatusHistory) BeforeCreate(*gorm.DB) error {
	newID(&h.ID)
	return nil
}

func (b *StylistBreak) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}

func (b *StylistBlockedSlot) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}

func (e *WalkInQueueEntry) BeforeCreate(*gorm.DB) error {
	newID(&e.ID)
	return nil
}

func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	newID(&l.ID)
	return nil
}
