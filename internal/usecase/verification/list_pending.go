package verification

import (
	"context"
	"fmt"

	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainverification "github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type ListPending struct {
	repo domainverification.Repository
}

func NewListPending(repo domainverification.Repository) *ListPending {
	return &ListPending{repo: repo}
}

func (uc *ListPending) Execute(ctx context.Context, caller account.Caller) ([]models.AuthenticationRequest, error) {
	if !caller.IsOfficial() {
		return nil, httperr.Forbidden("Only officials can view verification requests")
	}

	list, err := uc.repo.ListAuthRequestsByStatus(ctx, domainverification.StatusPending)
	if err != nil {
		return nil, httperr.Internal("failed to load requests", fmt.Errorf("list pending auth requests: %w", err))
	}
	return list, nil
}
