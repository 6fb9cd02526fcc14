package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain/event"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

type EventHandler struct {
	repo  event.Repository
	audit *audit.Logger
	log   *zap.Logger
}

func NewEventHandler(repo event.Repository, auditLog *audit.Logger, log *zap.Logger) *EventHandler {
	return &EventHandler{repo: repo, audit: auditLog, log: log}
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventDate   string `json:"eventDate" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Title and event date are required")
		return
	}

	date, ok := timezone.NormalizeDate(req.EventDate)
	if !ok {
		httperr.BadRequest(c, "Event date must be YYYY-MM-DD or like \"February 15, 2026\"")
		return
	}

	caller := middleware.CallerFrom(c)
	ev := &models.BarangayEvent{
		ID:          idgen.NewID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		EventDate:   date,
		CreatedBy:   caller.ID,
	}

	if err := h.repo.CreateEvent(c.Request.Context(), ev); err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to create event", fmt.Errorf("create event: %w", err)))
		return
	}

	h.audit.Record(c.Request.Context(), caller.ID, audit.ActionEventCreated, "barangay_event", ev.ID, map[string]string{"eventDate": date})

	httpresp.With(c, http.StatusCreated, "Event created", gin.H{"data": ev})
}

func (h *EventHandler) List(c *gin.Context) {
	list, err := h.repo.ListEvents(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to list events", fmt.Errorf("list events: %w", err)))
		return
	}
	httpresp.List(c, list)
}
