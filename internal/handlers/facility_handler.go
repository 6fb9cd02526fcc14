package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type FacilityHandler struct {
	repo  facility.Repository
	audit *audit.Logger
	log   *zap.Logger
}

func NewFacilityHandler(repo facility.Repository, auditLog *audit.Logger, log *zap.Logger) *FacilityHandler {
	return &FacilityHandler{repo: repo, audit: auditLog, log: log}
}

// --------- Requests ---------

type CreateFacilityRequest struct {
	Name        string  `json:"name" binding:"required"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" binding:"min=0"`
	Rate        float64 `json:"rate" binding:"min=0"`
	Downpayment float64 `json:"downpayment" binding:"min=0"`
	Amenities   string  `json:"amenities"`
	Active      *bool   `json:"active"`
}

type UpdateFacilityRequest struct {
	Name        *string  `json:"name,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Description *string  `json:"description,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Downpayment *float64 `json:"downpayment,omitempty"`
	Amenities   *string  `json:"amenities,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *FacilityHandler) List(c *gin.Context) {
	var active *bool
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	list, err := h.repo.ListFacilities(c.Request.Context(), active)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to list facilities", fmt.Errorf("list facilities: %w", err)))
		return
	}
	httpresp.List(c, list)
}

func (h *FacilityHandler) Create(c *gin.Context) {
	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Facility name is required and amounts must not be negative")
		return
	}

	f := &models.Facility{
		ID:          idgen.NewID(),
		Name:        strings.TrimSpace(req.Name),
		Icon:        req.Icon,
		Description: req.Description,
		Capacity:    req.Capacity,
		Rate:        req.Rate,
		Downpayment: req.Downpayment,
		Amenities:   req.Amenities,
		Active:      true,
	}
	if req.Active != nil {
		f.Active = *req.Active
	}
	if err := facility.Validate(f); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.repo.CreateFacility(c.Request.Context(), f); err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to create facility", fmt.Errorf("create facility: %w", err)))
		return
	}

	h.audit.Record(c.Request.Context(), middleware.CallerFrom(c).ID, audit.ActionFacilityCreated, "facility", f.ID, map[string]string{"name": f.Name})

	httpresp.With(c, http.StatusCreated, "Facility created", gin.H{"data": f})
}

func (h *FacilityHandler) Update(c *gin.Context) {
	var req UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	f, ok := h.find(c)
	if !ok {
		return
	}

	facility.Patch{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		Capacity:    req.Capacity,
		Rate:        req.Rate,
		Downpayment: req.Downpayment,
		Amenities:   req.Amenities,
		Active:      req.Active,
	}.Apply(f)

	if err := facility.Validate(f); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !h.save(c, f) {
		return
	}

	h.audit.Record(c.Request.Context(), middleware.CallerFrom(c).ID, audit.ActionFacilityUpdated, "facility", f.ID, req)

	httpresp.With(c, http.StatusOK, "Facility updated", gin.H{"data": f})
}

// Deactivate hides a facility from new bookings. Existing bookings keep it.
func (h *FacilityHandler) Deactivate(c *gin.Context) {
	f, ok := h.find(c)
	if !ok {
		return
	}

	f.Active = false
	if !h.save(c, f) {
		return
	}

	h.audit.Record(c.Request.Context(), middleware.CallerFrom(c).ID, audit.ActionFacilityDeactivate, "facility", f.ID, nil)

	httpresp.With(c, http.StatusOK, "Facility deactivated", gin.H{"data": f})
}

func (h *FacilityHandler) find(c *gin.Context) (*models.Facility, bool) {
	f, err := h.repo.GetFacility(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("Facility not found"))
		} else {
			httperr.Respond(c, h.log, httperr.Internal("failed to load facility", fmt.Errorf("get facility: %w", err)))
		}
		return nil, false
	}
	return f, true
}

func (h *FacilityHandler) save(c *gin.Context, f *models.Facility) bool {
	if err := h.repo.UpdateFacility(c.Request.Context(), f); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("Facility not found"))
		} else {
			httperr.Respond(c, h.log, httperr.Internal("failed to update facility", fmt.Errorf("update facility: %w", err)))
		}
		return false
	}
	return true
}
