package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucWalkin "github.com/BruksfildServices01/salon-scheduler/internal/usecase/walkin"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	add         *ucWalkin.AddToQueue
	update      *ucWalkin.UpdateQueueEntry
	serve       *ucWalkin.StartServing
	query       *ucWalkin.GetQueue
	recalculate *ucWalkin.RecalculatePositions
}

func NewQueueHandler(
	add *ucWalkin.AddToQueue,
	update *ucWalkin.UpdateQueueEntry,
	serve *ucWalkin.StartServing,
	query *ucWalkin.GetQueue,
	recalculate *ucWalkin.RecalculatePositions,
) *QueueHandler {
	return &QueueHandler{
		add:         add,
		update:      update,
		serve:       serve,
		query:       query,
		recalculate: recalculate,
	}
}

type AddToQueueRequest struct {
	BranchID string `json:"branch_id"`

	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	ServiceIDs         []string `json:"service_ids"`
	PreferredStylistID string   `json:"preferred_stylist_id"`
	GenderPreference   string   `json:"gender_preference"`
}

type StartServingRequest struct {
	StylistID string `json:"stylist_id" binding:"required"`
}

// ======================================================
// ADD
// ======================================================

func (h *QueueHandler) Add(c *gin.Context) {
	var req AddToQueueRequest
	if !bindJSON(c, &req) {
		return
	}

	branchID := req.BranchID
	if branchID == "" {
		branchID = middleware.BranchID(c)
	}

	entry, err := h.add.Execute(c.Request.Context(), ucWalkin.AddToQueueInput{
		TenantID:           middleware.TenantID(c),
		BranchID:           branchID,
		UserID:             middleware.UserID(c),
		CustomerID:         req.CustomerID,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		ServiceIDs:         req.ServiceIDs,
		PreferredStylistID: req.PreferredStylistID,
		GenderPreference:   req.GenderPreference,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, entry)
}

// ======================================================
// BOARD
// ======================================================

// GET /queue?date=&status=
func (h *QueueHandler) List(c *gin.Context) {
	entries, err := h.query.Execute(
		c.Request.Context(),
		middleware.TenantID(c),
		middleware.BranchID(c),
		c.Query("date"),
		domain.Status(c.Query("status")),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewQueueBoard(entries))
}

func (h *QueueHandler) Stats(c *gin.Context) {
	stats, err := h.query.Stats(
		c.Request.Context(),
		middleware.TenantID(c),
		middleware.BranchID(c),
		c.Query("date"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *QueueHandler) Recalculate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.Respond(c, httperr.ErrValidation("date_required", "date is required"))
		return
	}

	err := h.recalculate.Execute(
		c.Request.Context(),
		middleware.TenantID(c),
		middleware.BranchID(c),
		date,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// TRANSITIONS
// ======================================================

type entryFunc func(ctx context.Context, tenantID, entryID, userID string) (*models.WalkInQueueEntry, error)

func (h *QueueHandler) run(fn entryFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := fn(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, entry)
	}
}

func (h *QueueHandler) Call() gin.HandlerFunc     { return h.run(h.update.CallCustomer) }
func (h *QueueHandler) Complete() gin.HandlerFunc { return h.run(h.update.MarkComplete) }
func (h *QueueHandler) Leave() gin.HandlerFunc    { return h.run(h.update.MarkLeft) }

func (h *QueueHandler) Serve(c *gin.Context) {
	var req StartServingRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.serve.Execute(c.Request.Context(), ucWalkin.StartServingInput{
		TenantID:  middleware.TenantID(c),
		EntryID:   c.Param("id"),
		StylistID: req.StylistID,
		UserID:    middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, entry)
}
