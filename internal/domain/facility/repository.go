package facility

import (
	"context"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type Repository interface {
	CreateFacility(ctx context.Context, f *models.Facility) error

	GetFacility(ctx context.Context, id string) (*models.Facility, error)

	// ListFacilities returns facilities ordered by name; active filters when non-nil.
	ListFacilities(ctx context.Context, active *bool) ([]models.Facility, error)

	UpdateFacility(ctx context.Context, f *models.Facility) error
}
