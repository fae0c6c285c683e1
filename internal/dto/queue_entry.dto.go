package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// QueueEntryDTO is the board view of a walk-in entry.
type QueueEntryDTO struct {
	ID            string    `json:"id"`
	Token         int       `json:"token"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
	Position      int       `json:"position"`
	EstimatedWait int       `json:"estimated_wait"`
	AppointmentID *string   `json:"appointment_id"`
	ArrivedAt     time.Time `json:"arrived_at"`
}

func NewQueueBoard(entries []models.WalkInQueueEntry) []QueueEntryDTO {
	out := make([]QueueEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, QueueEntryDTO{
			ID:            e.ID,
			Token:         e.TokenNumber,
			CustomerName:  e.CustomerName,
			Status:        e.Status,
			Position:      e.Position,
			EstimatedWait: e.EstimatedWait,
			AppointmentID: e.AppointmentID,
			ArrivedAt:     e.CreatedAt,
		})
	}
	return out
}
