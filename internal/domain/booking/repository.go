package booking

import (
	"context"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type Repository interface {
	// -------- Create / read --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id string) (*models.Booking, error)

	// -------- Listings (newest first) --------
	ListBookings(ctx context.Context) ([]models.Booking, error)

	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)

	ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)

	ListBookingsByStatus(ctx context.Context, status Status) ([]models.Booking, error)

	ListBookingsByFacility(ctx context.Context, facilityID string) ([]models.Booking, error)

	// -------- State change --------

	// TransitionBooking persists b's decision fields only if the stored
	// booking is still in status from; otherwise it returns domain.ErrStale.
	TransitionBooking(ctx context.Context, b *models.Booking, from Status) error
}
