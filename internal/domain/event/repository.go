package event

import (
	"context"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type Repository interface {
	CreateEvent(ctx context.Context, ev *models.BarangayEvent) error

	// ListEvents returns events ordered by event date, earliest first.
	ListEvents(ctx context.Context) ([]models.BarangayEvent, error)
}
