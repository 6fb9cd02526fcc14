package verification

import (
	"context"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type Repository interface {
	// -------- Requests --------
	CreateAuthRequest(ctx context.Context, req *models.AuthenticationRequest) error

	GetAuthRequest(ctx context.Context, id string) (*models.AuthenticationRequest, error)

	// ListAuthRequestsByStatus returns newest first.
	ListAuthRequestsByStatus(ctx context.Context, status Status) ([]models.AuthenticationRequest, error)

	// ListUnsyncedApprovals returns approved requests whose user update has
	// not been confirmed.
	ListUnsyncedApprovals(ctx context.Context) ([]models.AuthenticationRequest, error)

	// -------- Decision --------

	// DecideAuthRequest persists req's decision fields only if the stored
	// request is still in status from; otherwise it returns domain.ErrStale.
	DecideAuthRequest(ctx context.Context, req *models.AuthenticationRequest, from Status) error

	// ApplyUserVerification sets isAuthenticated, verificationType and
	// discount on the user in one write.
	ApplyUserVerification(ctx context.Context, userID string, verificationType string, discount float64) error

	MarkAuthRequestSynced(ctx context.Context, id string) error
}

// Transactor is implemented by stores that can run several writes atomically.
// Stores without it get the writes in sequence plus reconciliation.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repo Repository) error) error
}
