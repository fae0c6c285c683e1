package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/salon-scheduler/internal/usecase/schedule"
)

type WorkingHoursHandler struct {
	hours *ucSchedule.WorkingHours
}

func NewWorkingHoursHandler(hours *ucSchedule.WorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{hours: hours}
}

type WorkingHoursUpdateRequest struct {
	Days []ucSchedule.DayHours `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.hours.Get(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, hours)
}

// Update replaces the week. Days left out of the body are closed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	hours, err := h.hours.Replace(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, hours)
}
