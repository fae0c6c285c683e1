package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

// GET /audit-logs?action=&entity=&entity_id=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}

	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, total, err := h.logger.List(c.Request.Context(), audit.ListFilter{
		TenantID: middleware.TenantID(c),
		BranchID: c.Query("branch_id"),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
