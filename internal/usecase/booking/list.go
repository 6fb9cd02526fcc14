package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainbooking "github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
	"github.com/yelo29/barangayreservetest-1/internal/validators"
)

// ListBookings answers every booking query. Residents only ever see their
// own bookings; officials see everything.
type ListBookings struct {
	repo domainbooking.Repository
	log  *zap.Logger
}

func NewListBookings(repo domainbooking.Repository, log *zap.Logger) *ListBookings {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListBookings{repo: repo, log: log}
}

func storeFailure(op string, err error) error {
	return httperr.Internal("failed to load bookings", fmt.Errorf("%s: %w", op, err))
}

// ForCaller lists by email when userEmail is set. Without it officials get
// every booking and residents get none.
func (uc *ListBookings) ForCaller(ctx context.Context, caller account.Caller, userEmail string) ([]models.Booking, error) {
	if strings.TrimSpace(userEmail) != "" {
		return uc.ByEmail(ctx, caller, userEmail)
	}
	if !caller.IsOfficial() {
		return []models.Booking{}, nil
	}

	list, err := uc.repo.ListBookings(ctx)
	if err != nil {
		return nil, storeFailure("list bookings", err)
	}
	return list, nil
}

func (uc *ListBookings) ByUser(ctx context.Context, caller account.Caller, userID string) ([]models.Booking, error) {
	if caller.ID != userID && !caller.IsOfficial() {
		return nil, httperr.Forbidden("Access denied")
	}

	list, err := uc.repo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure("list bookings by user", err)
	}
	return list, nil
}

func (uc *ListBookings) ByEmail(ctx context.Context, caller account.Caller, email string) ([]models.Booking, error) {
	email = validators.NormalizeEmail(email)
	if !strings.EqualFold(caller.Email, email) && !caller.IsOfficial() {
		return nil, httperr.Forbidden("Access denied")
	}

	list, err := uc.repo.ListBookingsByEmail(ctx, email)
	if err != nil {
		return nil, storeFailure("list bookings by email", err)
	}
	return list, nil
}

func (uc *ListBookings) Pending(ctx context.Context, caller account.Caller) ([]models.Booking, error) {
	if !caller.IsOfficial() {
		return nil, httperr.Forbidden("Only officials can view pending bookings")
	}

	list, err := uc.repo.ListBookingsByStatus(ctx, domainbooking.StatusPending)
	if err != nil {
		return nil, storeFailure("list pending bookings", err)
	}
	return list, nil
}

// ByFacilityDate lists a facility's bookings on one calendar day, whichever
// form the stored date was written in.
func (uc *ListBookings) ByFacilityDate(ctx context.Context, caller account.Caller, facilityID, date string) ([]models.Booking, error) {
	day, ok := timezone.NormalizeDate(date)
	if !ok {
		return nil, httperr.Validation("Invalid date")
	}
	return uc.byFacility(ctx, caller, facilityID, day, day)
}

// ByFacilityRange lists a facility's bookings in [start, end], inclusive.
func (uc *ListBookings) ByFacilityRange(ctx context.Context, caller account.Caller, facilityID, start, end string) ([]models.Booking, error) {
	from, ok1 := timezone.NormalizeDate(start)
	to, ok2 := timezone.NormalizeDate(end)
	if !ok1 || !ok2 {
		return nil, httperr.Validation("Invalid date range")
	}
	if from > to {
		return nil, httperr.Validation("Range start must not be after its end")
	}
	return uc.byFacility(ctx, caller, facilityID, from, to)
}

func (uc *ListBookings) byFacility(ctx context.Context, caller account.Caller, facilityID, from, to string) ([]models.Booking, error) {
	all, err := uc.repo.ListBookingsByFacility(ctx, facilityID)
	if err != nil {
		return nil, storeFailure("list bookings by facility", err)
	}

	inRange := domainbooking.InDateRange(all, from, to, func(b models.Booking) {
		uc.log.Debug("skipping booking with unparsable date",
			zap.String("booking_id", b.ID),
			zap.String("booking_date", b.BookingDate),
		)
	})

	if caller.IsOfficial() {
		return inRange, nil
	}
	return domainbooking.OwnedBy(inRange, caller.ID, caller.Email), nil
}
