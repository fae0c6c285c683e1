package dto

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

type AppointmentListDTO struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Status       string   `json:"status"`
	BookingType  string   `json:"booking_type"`
	StylistID    *string  `json:"stylist_id"`
	CustomerName string   `json:"customer_name"`
	ServiceNames []string `json:"service_names"`
	TotalAmount  float64  `json:"total_amount"`
	HasConflict  bool     `json:"has_conflict"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.ServiceName)
		}

		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.ScheduledDate,
			StartTime:    ap.ScheduledTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			BookingType:  ap.BookingType,
			StylistID:    ap.StylistID,
			CustomerName: ap.CustomerName,
			ServiceNames: names,
			TotalAmount:  ap.TotalAmount,
			HasConflict:  ap.HasConflict,
		})
	}
	return out
}
