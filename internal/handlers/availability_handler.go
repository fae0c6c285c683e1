package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	engine *ucAvailability.Engine
}

func NewAvailabilityHandler(engine *ucAvailability.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{engine: engine}
}

// GET /availability/slots?date=&service_ids=&stylist_id=&gender=
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	res, err := h.engine.GetAvailableSlots(c.Request.Context(), domain.SlotsInput{
		TenantID:         middleware.TenantID(c),
		BranchID:         middleware.BranchID(c),
		Date:             c.Query("date"),
		ServiceIDs:       queryList(c, "service_ids"),
		StylistID:        c.Query("stylist_id"),
		GenderPreference: c.Query("gender"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

// GET /availability/check?stylist_id=&date=&time=&duration=
func (h *AvailabilityHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	duration, err := h.duration(ctx, c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ok, err := h.engine.IsSlotAvailable(ctx, domain.SlotQuery{
		TenantID:  middleware.TenantID(c),
		BranchID:  middleware.BranchID(c),
		StylistID: c.Query("stylist_id"),
		Date:      c.Query("date"),
		Time:      c.Query("time"),
		Duration:  duration,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"available": ok})
}

// GET /availability/stylists?date=&time=&duration=&gender=
func (h *AvailabilityHandler) Stylists(c *gin.Context) {
	q, err := h.stylistQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	staff, err := h.engine.GetAvailableStylists(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, staff)
}

// POST /availability/auto-assign?date=&time=&duration=&gender=
func (h *AvailabilityHandler) AutoAssign(c *gin.Context) {
	q, err := h.stylistQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	staff, err := h.engine.AutoAssignStylist(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if staff == nil {
		httperr.Respond(c, httperr.ErrBusiness("no_stylist_available", "no stylist is free for this slot"))
		return
	}
	httpresp.OK(c, staff)
}

func (h *AvailabilityHandler) stylistQuery(c *gin.Context) (domain.StylistQuery, error) {
	duration, err := h.duration(c.Request.Context(), c)
	if err != nil {
		return domain.StylistQuery{}, err
	}
	return domain.StylistQuery{
		TenantID:         middleware.TenantID(c),
		BranchID:         middleware.BranchID(c),
		Date:             c.Query("date"),
		Time:             c.Query("time"),
		Duration:         duration,
		GenderPreference: c.Query("gender"),
	}, nil
}

// duration takes ?duration= when given, else the sum of ?service_ids=.
func (h *AvailabilityHandler) duration(ctx context.Context, c *gin.Context) (int, error) {
	if d := queryInt(c, "duration", 0); d > 0 {
		return d, nil
	}
	return h.engine.Duration(ctx, middleware.TenantID(c), queryList(c, "service_ids"))
}
