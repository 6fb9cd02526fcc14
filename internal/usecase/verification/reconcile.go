package verification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	domainverification "github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
)

type ReconcileReport struct {
	Checked  int      `json:"checked"`
	Repaired int      `json:"repaired"`
	Failed   []string `json:"failed"`
}

// Reconcile finishes approvals whose user update never landed.
type Reconcile struct {
	repo   domainverification.Repository
	policy domainverification.DiscountPolicy
	audit  *audit.Logger
	log    *zap.Logger
}

func NewReconcile(
	repo domainverification.Repository,
	policy domainverification.DiscountPolicy,
	audit *audit.Logger,
	log *zap.Logger,
) *Reconcile {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconcile{repo: repo, policy: policy, audit: audit, log: log}
}

// Execute repairs every unsynced approval it can. One failing request does
// not stop the others; its id is reported in Failed.
func (uc *Reconcile) Execute(ctx context.Context, actorID string) (*ReconcileReport, error) {
	pending, err := uc.repo.ListUnsyncedApprovals(ctx)
	if err != nil {
		return nil, httperr.Internal("failed to load approvals", fmt.Errorf("list unsynced approvals: %w", err))
	}

	report := &ReconcileReport{Checked: len(pending), Failed: []string{}}
	for i := range pending {
		req := &pending[i]
		if err := syncUser(ctx, uc.repo, req, uc.policy); err != nil {
			uc.log.Warn("reconcile failed",
				zap.String("request_id", req.ID),
				zap.String("user_id", req.UserID),
				zap.Error(err),
			)
			report.Failed = append(report.Failed, req.ID)
			continue
		}

		report.Repaired++
		uc.audit.Record(ctx, actorID, audit.ActionVerificationSynced, "authentication_request", req.ID, map[string]string{
			"userId": req.UserID,
		})
	}

	if report.Checked > 0 {
		uc.log.Info("verification reconcile finished",
			zap.Int("checked", report.Checked),
			zap.Int("repaired", report.Repaired),
			zap.Int("failed", len(report.Failed)),
		)
	}
	return report, nil
}
