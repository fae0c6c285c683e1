package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/salon-scheduler/internal/usecase/schedule"
)

// ScheduleHandler manages stylist breaks and blocked slots.
type ScheduleHandler struct {
	breaks *ucSchedule.ManageBreaks
	blocks *ucSchedule.ManageBlockedSlots
}

func NewScheduleHandler(breaks *ucSchedule.ManageBreaks, blocks *ucSchedule.ManageBlockedSlots) *ScheduleHandler {
	return &ScheduleHandler{breaks: breaks, blocks: blocks}
}

type CreateBreakRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Label     string `json:"label"`
}

type CreateBlockedSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	IsFullDay bool   `json:"is_full_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// ======================================================
// BREAKS
// ======================================================

func (h *ScheduleHandler) CreateBreak(c *gin.Context) {
	var req CreateBreakRequest
	if !bindJSON(c, &req) {
		return
	}

	br, err := h.breaks.Create(c.Request.Context(), ucSchedule.CreateBreakInput{
		TenantID:  middleware.TenantID(c),
		StylistID: c.Param("id"),
		UserID:    middleware.UserID(c),
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Label:     req.Label,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, br)
}

func (h *ScheduleHandler) ListBreaks(c *gin.Context) {
	rows, err := h.breaks.List(
		c.Request.Context(),
		middleware.TenantID(c),
		c.Param("id"),
		c.Query("active") != "false",
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) DeactivateBreak(c *gin.Context) {
	br, err := h.breaks.Deactivate(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, br)
}

// ======================================================
// BLOCKED SLOTS
// ======================================================

func (h *ScheduleHandler) CreateBlockedSlot(c *gin.Context) {
	var req CreateBlockedSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.blocks.Create(c.Request.Context(), ucSchedule.CreateBlockedSlotInput{
		TenantID:  middleware.TenantID(c),
		StylistID: c.Param("id"),
		UserID:    middleware.UserID(c),
		Date:      req.Date,
		IsFullDay: req.IsFullDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, slot)
}

// GET /stylists/:id/blocked-slots?from=&to=
func (h *ScheduleHandler) ListBlockedSlots(c *gin.Context) {
	rows, err := h.blocks.List(
		c.Request.Context(),
		middleware.TenantID(c),
		c.Param("id"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) DeleteBlockedSlot(c *gin.Context) {
	if err := h.blocks.Delete(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
