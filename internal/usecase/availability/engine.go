package availability

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// ENGINE
// ======================================================

type Engine struct {
	reader          domain.Reader
	step            int
	defaultDuration int
}

func NewEngine(reader domain.Reader, step, defaultDuration int) *Engine {
	if step <= 0 {
		step = domain.DefaultSlotStep
	}
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultServiceDuration
	}
	return &Engine{
		reader:          reader,
		step:            step,
		defaultDuration: defaultDuration,
	}
}

// ======================================================
// IS SLOT AVAILABLE
// ======================================================

// IsSlotAvailable checks working hours, breaks, blocked slots and bookings
// in that order and stops at the first failure.
func (e *Engine) IsSlotAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	start, end, err := e.window(q.Time, q.Duration)
	if err != nil {
		return false, err
	}

	hours, err := e.openingHours(ctx, q.TenantID, q.BranchID, q.Date)
	if err != nil {
		return false, err
	}
	if !hours.fits(start, end) {
		return false, nil
	}

	day := &stylistDay{}

	// --------------------------------------------------
	// Breaks
	// --------------------------------------------------
	day.breaks, err = e.reader.ListBreaks(ctx, q.TenantID, q.StylistID, hours.dow)
	if err != nil {
		return false, err
	}
	if day.onBreak(start, end) {
		return false, nil
	}

	// --------------------------------------------------
	// Blocked slots
	// --------------------------------------------------
	day.blocks, err = e.reader.ListBlockedSlots(ctx, q.TenantID, q.StylistID, q.Date)
	if err != nil {
		return false, err
	}
	if day.blocked(start, end) {
		return false, nil
	}

	// --------------------------------------------------
	// Bookings
	// --------------------------------------------------
	day.bookings, err = e.reader.ListActiveAppointments(ctx, q.TenantID, q.StylistID, q.Date)
	if err != nil {
		return false, err
	}
	return !day.booked(start, end), nil
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

// GetAvailableSlots lists every start time at which at least one eligible
// stylist is free for the combined duration of the services. A closed day
// has no slots.
func (e *Engine) GetAvailableSlots(ctx context.Context, in domain.SlotsInput) (*domain.SlotsResult, error) {
	duration, err := e.Duration(ctx, in.TenantID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	result := &domain.SlotsResult{
		Date:     in.Date,
		Duration: duration,
		Slots:    []domain.TimeSlot{},
	}

	hours, err := e.openingHours(ctx, in.TenantID, in.BranchID, in.Date)
	if err != nil {
		return nil, err
	}
	if hours.closed {
		return result, nil
	}

	stylists, err := e.eligible(ctx, in.TenantID, in.BranchID, in.GenderPreference, in.StylistID)
	if err != nil {
		return nil, err
	}

	days := make([]*stylistDay, 0, len(stylists))
	for _, s := range stylists {
		day, err := e.loadDay(ctx, in.TenantID, s.ID, in.Date, hours.dow)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	var candidates []timeutil.CandidateSlot
	for slot := range timeutil.GenerateTimeSlots(hours.open, hours.close, e.step) {
		start := timeutil.MustParseHM(slot)
		end := start + duration
		if !hours.fits(start, end) {
			continue
		}
		for i, day := range days {
			if day.free(start, end) {
				candidates = append(candidates, timeutil.CandidateSlot{
					Time:      slot,
					StylistID: stylists[i].ID,
				})
			}
		}
	}

	result.Slots = domain.ToTimeSlots(timeutil.DeduplicateSlots(candidates), duration)
	return result, nil
}

// ======================================================
// AVAILABLE STYLISTS
// ======================================================

func (e *Engine) GetAvailableStylists(ctx context.Context, q domain.StylistQuery) ([]models.Staff, error) {
	start, end, err := e.window(q.Time, q.Duration)
	if err != nil {
		return nil, err
	}

	hours, err := e.openingHours(ctx, q.TenantID, q.BranchID, q.Date)
	if err != nil {
		return nil, err
	}

	out := []models.Staff{}
	if !hours.fits(start, end) {
		return out, nil
	}

	stylists, err := e.eligible(ctx, q.TenantID, q.BranchID, q.GenderPreference, "")
	if err != nil {
		return nil, err
	}

	for _, s := range stylists {
		day, err := e.loadDay(ctx, q.TenantID, s.ID, q.Date, hours.dow)
		if err != nil {
			return nil, err
		}
		if day.free(start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

// AutoAssignStylist picks the available stylist with the fewest bookings on
// the date, lowest id first on ties. It returns nil when nobody is free.
func (e *Engine) AutoAssignStylist(ctx context.Context, q domain.StylistQuery) (*models.Staff, error) {
	free, err := e.GetAvailableStylists(ctx, q)
	if err != nil || len(free) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(free))
	for _, s := range free {
		ids = append(ids, s.ID)
	}

	load, err := e.reader.CountAppointmentsByStylist(ctx, q.TenantID, q.Date, ids)
	if err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < len(free); i++ {
		a, b := load[free[i].ID], load[free[best].ID]
		if a < b || (a == b && free[i].ID < free[best].ID) {
			best = i
		}
	}
	return &free[best], nil
}

// Duration sums the durations of the active services among ids, falling
// back to the default when none resolve.
func (e *Engine) Duration(ctx context.Context, tenantID string, ids []string) (int, error) {
	services, err := e.reader.GetServices(ctx, tenantID, ids)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	if total <= 0 {
		return e.defaultDuration, nil
	}
	return total, nil
}

// ======================================================
// HELPERS
// ======================================================

func (e *Engine) window(hm string, duration int) (int, int, error) {
	start, err := timeutil.ParseHM(hm)
	if err != nil {
		return 0, 0, httperr.ErrValidation("invalid_time", err.Error())
	}
	if duration <= 0 {
		duration = e.defaultDuration
	}
	return start, start + duration, nil
}

func (e *Engine) eligible(ctx context.Context, tenantID, branchID, gender, onlyID string) ([]models.Staff, error) {
	stylists, err := e.reader.ListStylists(ctx, tenantID, branchID, domain.NormalizeGender(gender))
	if err != nil {
		return nil, err
	}
	if onlyID == "" {
		return stylists, nil
	}
	for _, s := range stylists {
		if s.ID == onlyID {
			return []models.Staff{s}, nil
		}
	}
	return []models.Staff{}, nil
}

type openingHours struct {
	dow    int
	closed bool
	open   string
	close  string
	from   int
	to     int
}

// fits reports whether [start,end) lies inside the opening hours.
func (h openingHours) fits(start, end int) bool {
	return !h.closed && start >= h.from && end <= h.to
}

func (e *Engine) openingHours(ctx context.Context, tenantID, branchID, date string) (openingHours, error) {
	dow, err := timezone.Weekday(date)
	if err != nil {
		return openingHours{}, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	h := openingHours{dow: dow, closed: true}

	wh, err := e.reader.GetWorkingHours(ctx, tenantID, branchID, dow)
	if err != nil {
		return h, err
	}
	if wh == nil || wh.IsClosed {
		return h, nil
	}

	from, err := timeutil.ParseHM(wh.OpenTime)
	if err != nil {
		return h, nil
	}
	to, err := timeutil.ParseHM(wh.CloseTime)
	if err != nil {
		return h, nil
	}
	if to <= from {
		to += timeutil.MinutesPerDay
	}

	h.closed = false
	h.open, h.close = wh.OpenTime, wh.CloseTime
	h.from, h.to = from, to
	// The slot grid stops at midnight; later starts belong to the next day.
	if to >= timeutil.MinutesPerDay {
		h.close = "24:00"
	}
	return h, nil
}

func (e *Engine) loadDay(ctx context.Context, tenantID, stylistID, date string, dow int) (*stylistDay, error) {
	var (
		day stylistDay
		err error
	)
	if day.breaks, err = e.reader.ListBreaks(ctx, tenantID, stylistID, dow); err != nil {
		return nil, err
	}
	if day.blocks, err = e.reader.ListBlockedSlots(ctx, tenantID, stylistID, date); err != nil {
		return nil, err
	}
	if day.bookings, err = e.reader.ListActiveAppointments(ctx, tenantID, stylistID, date); err != nil {
		return nil, err
	}
	return &day, nil
}
