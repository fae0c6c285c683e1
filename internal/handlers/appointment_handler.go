package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	transition *ucAppointment.TransitionAppointment
	cancel     *ucAppointment.CancelAppointment
	reschedule *ucAppointment.RescheduleAppointment
	resolve    *ucAppointment.ResolveConflict
	reassign   *ucAppointment.ReassignStylist
	list       *ucAppointment.ListAppointments
	get        *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	transition *ucAppointment.TransitionAppointment,
	cancel *ucAppointment.CancelAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	resolve *ucAppointment.ResolveConflict,
	reassign *ucAppointment.ReassignStylist,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		transition: transition,
		cancel:     cancel,
		reschedule: reschedule,
		resolve:    resolve,
		reassign:   reassign,
		list:       list,
		get:        get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BranchID string `json:"branch_id"`

	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	ServiceIDs       []string `json:"service_ids"`
	StylistID        string   `json:"stylist_id"`
	AssignLater      bool     `json:"assign_later"`
	GenderPreference string   `json:"gender_preference"`

	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	BookingType string `json:"booking_type"`
	Notes       string `json:"notes"`

	ForceOverride   bool                             `json:"force_override"`
	OverrideReason  string                           `json:"override_reason"`
	ConflictActions map[string]domain.ConflictAction `json:"conflict_actions"`
}

type CancelAppointmentRequest struct {
	Reason         string `json:"reason"`
	SalonCancelled bool   `json:"salon_cancelled"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	StylistID string `json:"stylist_id"`
	Reason    string `json:"reason"`
}

type ResolveConflictRequest struct {
	Notes string `json:"notes"`
}

type ReassignStylistRequest struct {
	StylistID string `json:"stylist_id" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	branchID := req.BranchID
	if branchID == "" {
		branchID = middleware.BranchID(c)
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		TenantID:         middleware.TenantID(c),
		BranchID:         branchID,
		UserID:           middleware.UserID(c),
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		ServiceIDs:       req.ServiceIDs,
		StylistID:        req.StylistID,
		AssignLater:      req.AssignLater,
		GenderPreference: req.GenderPreference,
		Date:             req.Date,
		Time:             req.Time,
		BookingType:      domain.BookingType(req.BookingType),
		Notes:            req.Notes,
		ForceOverride:    req.ForceOverride,
		OverrideReason:   req.OverrideReason,
		ConflictActions:  req.ConflictActions,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		TenantID:  middleware.TenantID(c),
		BranchID:  middleware.BranchID(c),
		Date:      c.Query("date"),
		StylistID: c.Query("stylist_id"),
		Status:    c.Query("status"),
		Limit:     queryInt(c, "limit", 0),
		Offset:    queryInt(c, "offset", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(aps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	rows, err := h.get.GetStatusHistory(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

type transitionFunc func(ctx context.Context, tenantID, id, userID string) (*models.Appointment, error)

func (h *AppointmentHandler) run(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ap, err := fn(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) Confirm() gin.HandlerFunc    { return h.run(h.transition.Confirm) }
func (h *AppointmentHandler) CheckIn() gin.HandlerFunc    { return h.run(h.transition.CheckIn) }
func (h *AppointmentHandler) Start() gin.HandlerFunc      { return h.run(h.transition.Start) }
func (h *AppointmentHandler) Complete() gin.HandlerFunc   { return h.run(h.transition.Complete) }
func (h *AppointmentHandler) MarkNoShow() gin.HandlerFunc { return h.run(h.transition.MarkNoShow) }

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		TenantID:       middleware.TenantID(c),
		AppointmentID:  c.Param("id"),
		UserID:         middleware.UserID(c),
		Reason:         req.Reason,
		SalonCancelled: req.SalonCancelled,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		TenantID:      middleware.TenantID(c),
		AppointmentID: c.Param("id"),
		UserID:        middleware.UserID(c),
		NewDate:       req.Date,
		NewTime:       req.Time,
		StylistID:     req.StylistID,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// CONFLICTS & STYLIST
// ======================================================

func (h *AppointmentHandler) ResolveConflict(c *gin.Context) {
	var req ResolveConflictRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.resolve.Execute(c.Request.Context(), ucAppointment.ResolveConflictInput{
		TenantID:      middleware.TenantID(c),
		AppointmentID: c.Param("id"),
		UserID:        middleware.UserID(c),
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reassign(c *gin.Context) {
	var req ReassignStylistRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reassign.Execute(c.Request.Context(), ucAppointment.ReassignStylistInput{
		TenantID:      middleware.TenantID(c),
		AppointmentID: c.Param("id"),
		StylistID:     req.StylistID,
		UserID:        middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}
