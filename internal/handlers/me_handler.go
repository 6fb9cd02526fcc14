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
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
)

// UserHandler serves the caller's own profile and user lookups.
type UserHandler struct {
	users account.Repository
	audit *audit.Logger
	log   *zap.Logger
}

func NewUserHandler(users account.Repository, auditLog *audit.Logger, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, audit: auditLog, log: log}
}

// UpdateProfileRequest lists the only fields a user may change. Role,
// discount and verification fields are not accepted here.
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	ContactNumber *string `json:"contactNumber"`
	Address       *string `json:"address"`
}

func (h *UserHandler) load(c *gin.Context, id string) (account.PublicUser, bool) {
	u, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("User not found"))
		} else {
			httperr.Respond(c, h.log, httperr.Internal("failed to load user", fmt.Errorf("get user: %w", err)))
		}
		return account.PublicUser{}, false
	}
	return account.Public(u), true
}

func (h *UserHandler) Me(c *gin.Context) {
	u, ok := h.load(c, middleware.CallerFrom(c).ID)
	if !ok {
		return
	}
	httpresp.With(c, http.StatusOK, "", gin.H{"user": u})
}

func (h *UserHandler) Get(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	id := c.Param("id")
	if caller.ID != id && !caller.IsOfficial() {
		httperr.Respond(c, h.log, httperr.Forbidden("Access denied"))
		return
	}

	u, ok := h.load(c, id)
	if !ok {
		return
	}
	httpresp.With(c, http.StatusOK, "", gin.H{"user": u})
}

func (h *UserHandler) Update(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	id := c.Param("id")
	if caller.ID != id {
		httperr.Respond(c, h.log, httperr.Forbidden("You can only update your own profile"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	patch := account.ProfilePatch{
		Name:          trimmed(req.Name),
		ContactNumber: trimmed(req.ContactNumber),
		Address:       trimmed(req.Address),
	}
	if patch.Empty() {
		httperr.BadRequest(c, "Nothing to update")
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		httperr.BadRequest(c, "Name must not be empty")
		return
	}

	u, err := h.users.UpdateUserProfile(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("User not found"))
			return
		}
		httperr.Respond(c, h.log, httperr.Internal("failed to update user", fmt.Errorf("update profile: %w", err)))
		return
	}

	h.audit.Record(c.Request.Context(), caller.ID, audit.ActionUserUpdated, "user", id, nil)

	httpresp.With(c, http.StatusOK, "Profile updated", gin.H{"user": account.Public(u)})
}

// Officials lists the barangay officials for the public contact page.
func (h *UserHandler) Officials(c *gin.Context) {
	list, err := h.users.ListUsersByRole(c.Request.Context(), account.RoleOfficial)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed to load officials", fmt.Errorf("list officials: %w", err)))
		return
	}

	type official struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	out := make([]official, 0, len(list))
	for _, u := range list {
		out = append(out, official{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	httpresp.List(c, out)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
