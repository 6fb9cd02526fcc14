package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	audit *audit.Logger
	log   *zap.Logger
}

func NewAuditLogsHandler(auditLog *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{audit: auditLog, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional day bounds, both inclusive
	// --------------------------------------------------

	if from, err := time.Parse(timezone.ISODate, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(timezone.ISODate, c.Query("to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}

	logs, total, err := h.audit.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to list audit logs", fmt.Errorf("list audit logs: %w", err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page,
		"limit":   limit,
		"total":   total,
		"data":    logs,
	})
}
