package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainbooking "github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

type UpdateBookingStatus struct {
	repo  domainbooking.Repository
	audit *audit.Logger
	now   timezone.Clock
}

func NewUpdateBookingStatus(
	repo domainbooking.Repository,
	audit *audit.Logger,
	now timezone.Clock,
) *UpdateBookingStatus {
	if now == nil {
		now = timezone.Now
	}
	return &UpdateBookingStatus{repo: repo, audit: audit, now: now}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	caller account.Caller,
	bookingID string,
	status string,
) (*models.Booking, error) {

	if !caller.IsOfficial() {
		return nil, httperr.Forbidden("Only officials can update booking status")
	}

	next, ok := domainbooking.ParseStatus(status)
	if !ok {
		return nil, httperr.Validation("Status must be approved or rejected")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("Booking not found")
		}
		return nil, httperr.Internal("failed to load booking", fmt.Errorf("get booking: %w", err))
	}

	from := domainbooking.Status(b.Status)
	if err := domainbooking.Decide(b, next, caller.ID, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionBooking(ctx, b, from); err != nil {
		switch {
		case errors.Is(err, domain.ErrStale):
			return nil, httperr.StaleState("Booking was already decided")
		case errors.Is(err, domain.ErrNotFound):
			return nil, httperr.NotFound("Booking not found")
		}
		return nil, httperr.Internal("failed to update booking", fmt.Errorf("transition booking: %w", err))
	}

	uc.audit.Record(ctx, caller.ID, audit.ActionBookingDecided, "booking", b.ID, map[string]string{
		"from": string(from),
		"to":   b.Status,
	})

	return b, nil
}
