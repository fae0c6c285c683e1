package appointment

import (
	"math"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Quote is the price lock taken when an appointment is booked. Nothing in it
// is ever recomputed from the catalog afterwards.
type Quote struct {
	Lines         []models.AppointmentService
	Subtotal      float64
	TaxAmount     float64
	TotalAmount   float64
	TotalDuration int
	LockedAt      time.Time
}

// LockPrices snapshots price, tax, duration and commission of every service.
func LockPrices(services []models.Service, stylistID *string, now time.Time) Quote {
	q := Quote{
		Lines:    make([]models.AppointmentService, 0, len(services)),
		LockedAt: now.Truncate(time.Microsecond),
	}

	for _, s := range services {
		tax := round2(s.Price * s.TaxRate)
		q.Lines = append(q.Lines, models.AppointmentService{
			ServiceID:        s.ID,
			ServiceName:      s.Name,
			UnitPrice:        s.Price,
			TaxAmount:        tax,
			DurationMinutes:  s.DurationMinutes,
			CommissionRate:   s.CommissionRate,
			CommissionAmount: round2(s.Price * s.CommissionRate),
			Status:           string(StatusBooked),
			StylistID:        stylistID,
		})
		q.Subtotal += s.Price
		q.TaxAmount += tax
		q.TotalDuration += s.DurationMinutes
	}

	q.Subtotal = round2(q.Subtotal)
	q.TaxAmount = round2(q.TaxAmount)
	q.TotalAmount = round2(q.Subtotal + q.TaxAmount)
	return q
}

// Apply copies the locked amounts onto ap.
func (q Quote) Apply(ap *models.Appointment) {
	ap.Services = q.Lines
	ap.Subtotal = q.Subtotal
	ap.TaxAmount = q.TaxAmount
	ap.TotalAmount = q.TotalAmount
	ap.TotalDuration = q.TotalDuration
	ap.PriceLockedAt = q.LockedAt
}

// CopyLockedPrice carries the money of src over to a superseding record
// verbatim, lines included.
func CopyLockedPrice(src, dst *models.Appointment, stylistID *string) {
	dst.Subtotal = src.Subtotal
	dst.TaxAmount = src.TaxAmount
	dst.TotalAmount = src.TotalAmount
	dst.TotalDuration = src.TotalDuration
	dst.PriceLockedAt = src.PriceLockedAt

	dst.Services = make([]models.AppointmentService, 0, len(src.Services))
	for _, line := range src.Services {
		line.ID = ""
		line.AppointmentID = ""
		line.Status = string(StatusBooked)
		line.StylistID = stylistID
		line.CreatedAt = time.Time{}
		line.UpdatedAt = time.Time{}
		dst.Services = append(dst.Services, line)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
