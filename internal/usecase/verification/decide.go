package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainverification "github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

// DecideRequest approves or rejects a pending request. Approval also writes
// the user's verification fields: inside one transaction when the store
// supports it, otherwise request first and user second, with the request
// left unsynced until the user write is confirmed.
type DecideRequest struct {
	repo   domainverification.Repository
	policy domainverification.DiscountPolicy
	audit  *audit.Logger
	now    timezone.Clock
}

func NewDecideRequest(
	repo domainverification.Repository,
	policy domainverification.DiscountPolicy,
	audit *audit.Logger,
	now timezone.Clock,
) *DecideRequest {
	if now == nil {
		now = timezone.Now
	}
	return &DecideRequest{repo: repo, policy: policy, audit: audit, now: now}
}

func (uc *DecideRequest) Execute(
	ctx context.Context,
	caller account.Caller,
	requestID string,
	status string,
) (*models.AuthenticationRequest, error) {

	if !caller.IsOfficial() {
		return nil, httperr.Forbidden("Only officials can decide verification requests")
	}

	next := domainverification.Status(status)

	req, err := uc.repo.GetAuthRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("Authentication request not found")
		}
		return nil, httperr.Internal("failed to load request", fmt.Errorf("get auth request: %w", err))
	}

	from := domainverification.Status(req.Status)
	if err := domainverification.Decide(req, next, caller.ID, uc.now()); err != nil {
		return nil, err
	}

	apply := func(repo domainverification.Repository) error {
		if err := repo.DecideAuthRequest(ctx, req, from); err != nil {
			return err
		}
		if next != domainverification.StatusApproved {
			return nil
		}
		return syncUser(ctx, repo, req, uc.policy)
	}

	if tx, ok := uc.repo.(domainverification.Transactor); ok {
		err = tx.WithinTransaction(ctx, apply)
	} else {
		err = apply(uc.repo)
	}
	if err != nil {
		if errors.Is(err, domain.ErrStale) {
			return nil, httperr.StaleState("Request was already decided")
		}
		return nil, httperr.Internal("failed to apply decision", fmt.Errorf("decide auth request %s: %w", req.ID, err))
	}

	uc.audit.Record(ctx, caller.ID, audit.ActionVerificationDecide, "authentication_request", req.ID, map[string]any{
		"status":           req.Status,
		"userId":           req.UserID,
		"verificationType": req.VerificationType,
	})

	return req, nil
}

// syncUser writes the approved verification onto the user and then marks the
// request synced.
func syncUser(
	ctx context.Context,
	repo domainverification.Repository,
	req *models.AuthenticationRequest,
	policy domainverification.DiscountPolicy,
) error {
	discount := policy.DiscountFor(req.VerificationType)
	if err := repo.ApplyUserVerification(ctx, req.UserID, req.VerificationType, discount); err != nil {
		return fmt.Errorf("apply user verification: %w", err)
	}
	if err := repo.MarkAuthRequestSynced(ctx, req.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	req.UserSynced = true
	return nil
}
