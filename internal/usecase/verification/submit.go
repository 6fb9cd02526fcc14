package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainverification "github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitInput struct {
	Name             string
	ContactNumber    string
	Address          string
	VerificationType string
	ProfileImageURL  string
	IDImageURL       string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitRequest struct {
	requests domainverification.Repository
	users    account.Repository
	audit    *audit.Logger
}

func NewSubmitRequest(
	requests domainverification.Repository,
	users account.Repository,
	audit *audit.Logger,
) *SubmitRequest {
	return &SubmitRequest{requests: requests, users: users, audit: audit}
}

func (uc *SubmitRequest) Execute(
	ctx context.Context,
	caller account.Caller,
	in SubmitInput,
) (*models.AuthenticationRequest, error) {

	vt := strings.TrimSpace(in.VerificationType)
	if !domainverification.IsValidType(vt) {
		return nil, httperr.Validation("Verification type must be resident or non-resident")
	}
	if strings.TrimSpace(in.ProfileImageURL) == "" || strings.TrimSpace(in.IDImageURL) == "" {
		return nil, httperr.Validation("Profile image and ID image are both required")
	}

	user, err := uc.users.GetUserByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Unauthorized("User no longer exists")
		}
		return nil, httperr.Internal("failed to load user", fmt.Errorf("get user: %w", err))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = user.Name
	}
	if name == "" {
		return nil, httperr.Validation("Name is required")
	}

	profile := strings.TrimSpace(in.ProfileImageURL)
	idImage := strings.TrimSpace(in.IDImageURL)

	req := &models.AuthenticationRequest{
		ID:               idgen.NewID(),
		UserID:           user.ID,
		Name:             name,
		Email:            user.Email,
		ContactNumber:    firstNonEmpty(in.ContactNumber, user.ContactNumber),
		Address:          firstNonEmpty(in.Address, user.Address),
		VerificationType: vt,
		ProfileImageURL:  &profile,
		IDImageURL:       &idImage,
		Status:           string(domainverification.StatusPending),
		UserSynced:       true,
	}

	if err := uc.requests.CreateAuthRequest(ctx, req); err != nil {
		return nil, httperr.Internal("failed to create request", fmt.Errorf("create auth request: %w", err))
	}

	uc.audit.Record(ctx, caller.ID, audit.ActionVerificationSubmit, "authentication_request", req.ID, map[string]string{
		"verificationType": vt,
	})

	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
