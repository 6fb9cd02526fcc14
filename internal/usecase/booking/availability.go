package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainbooking "github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

// GetAvailability reports how a facility's slots are taken on one day. It
// only reads; nothing is reserved.
type GetAvailability struct {
	bookings   domainbooking.Repository
	facilities facility.Repository
}

func NewGetAvailability(
	bookings domainbooking.Repository,
	facilities facility.Repository,
) *GetAvailability {
	return &GetAvailability{bookings: bookings, facilities: facilities}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	caller account.Caller,
	facilityID string,
	date string,
) (*domainbooking.Availability, error) {

	day, ok := timezone.NormalizeDate(date)
	if !ok {
		return nil, httperr.Validation("Invalid date")
	}

	if _, err := uc.facilities.GetFacility(ctx, facilityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("Facility not found")
		}
		return nil, httperr.Internal("failed to load facility", fmt.Errorf("get facility: %w", err))
	}

	all, err := uc.bookings.ListBookingsByFacility(ctx, facilityID)
	if err != nil {
		return nil, storeFailure("list bookings by facility", err)
	}

	// Occupancy counts every user's bookings; only slot names leave this call.
	sameDay := domainbooking.InDateRange(all, day, day, nil)
	av := domainbooking.Categorize(domainbooking.DefaultTimeSlots, sameDay, caller.ID)
	av.Date = day
	av.FacilityID = facilityID
	return &av, nil
}
