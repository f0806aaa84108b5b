package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/audit"
	"boxfactory/internal/domain/dashboard"
	"boxfactory/internal/infrastructure/http/v1/dto"
)

// DashboardHandler serves the aggregated statistics.
type DashboardHandler struct {
	BaseHandler
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// AuditHandler serves the change history of a record.
type AuditHandler struct {
	BaseHandler
	log audit.Log

	// entityTypes are the values accepted in the :entity path segment
	entityTypes map[string]struct{}
}

func NewAuditHandler(log audit.Log, entityTypes ...string) *AuditHandler {
	known := make(map[string]struct{}, len(entityTypes))
	for _, t := range entityTypes {
		known[t] = struct{}{}
	}
	return &AuditHandler{log: log, entityTypes: known}
}

// History handles GET /audit/:entity/:id.
func (h *AuditHandler) History(c *gin.Context) {
	entityType := strings.ToLower(c.Param("entity"))
	if _, ok := h.entityTypes[entityType]; !ok {
		h.Error(c, apperror.NewValidation("Unknown entity type: "+c.Param("entity")))
		return
	}

	raw := c.Param("id")
	entityID, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid id").WithDetail("id", raw))
		return
	}

	limit := audit.DefaultHistoryLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n < limit {
		limit = n
	}

	entries, err := h.log.History(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		h.Error(c, apperror.NewDatabase("audit history", err))
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: len(entries), Data: entries})
}
