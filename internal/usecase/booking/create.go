package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainbooking "github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	FacilityID    string
	BookingDate   string
	TimeSlot      string
	Purpose       string
	ContactNumber string
	Address       string
	ReceiptURL    *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	bookings   domainbooking.Repository
	facilities facility.Repository
	users      account.Repository
	refs       *idgen.References
	audit      *audit.Logger
}

func NewCreateBooking(
	bookings domainbooking.Repository,
	facilities facility.Repository,
	users account.Repository,
	refs *idgen.References,
	audit *audit.Logger,
) *CreateBooking {
	return &CreateBooking{
		bookings:   bookings,
		facilities: facilities,
		users:      users,
		refs:       refs,
		audit:      audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Check runs the validation Execute starts with. Handlers call it before
// storing a receipt so a doomed booking leaves no object behind.
func (uc *CreateBooking) Check(ctx context.Context, in CreateBookingInput) error {
	_, _, err := uc.check(ctx, in)
	return err
}

func (uc *CreateBooking) check(ctx context.Context, in CreateBookingInput) (CreateBookingInput, *models.Facility, error) {

	// --------------------------------------------------
	// Required fields and date format
	// --------------------------------------------------
	in.FacilityID = strings.TrimSpace(in.FacilityID)
	in.BookingDate = strings.TrimSpace(in.BookingDate)
	in.TimeSlot = strings.TrimSpace(in.TimeSlot)
	if in.FacilityID == "" || in.BookingDate == "" || in.TimeSlot == "" {
		return in, nil, httperr.Validation("Facility, booking date and time slot are required")
	}
	if _, ok := timezone.NormalizeDate(in.BookingDate); !ok {
		return in, nil, httperr.Validation("Booking date must be YYYY-MM-DD or like \"February 15, 2026\"")
	}

	// --------------------------------------------------
	// Facility
	// --------------------------------------------------
	f, err := uc.facilities.GetFacility(ctx, in.FacilityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return in, nil, httperr.NotFound("Facility not found")
		}
		return in, nil, httperr.Internal("failed to load facility", fmt.Errorf("get facility: %w", err))
	}
	if !f.Active {
		return in, nil, httperr.Validation("Facility is not accepting bookings")
	}

	return in, f, nil
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	caller account.Caller,
	in CreateBookingInput,
) (*models.Booking, error) {

	in, f, err := uc.check(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Requesting user (discount is read, never trusted from input)
	// --------------------------------------------------
	user, err := uc.users.GetUserByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Unauthorized("User no longer exists")
		}
		return nil, httperr.Internal("failed to load user", fmt.Errorf("get user: %w", err))
	}

	quote := domainbooking.QuoteFor(f, user.Discount)

	contact := strings.TrimSpace(in.ContactNumber)
	if contact == "" {
		contact = user.ContactNumber
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		address = user.Address
	}

	paymentStatus := domainbooking.PaymentPending
	if in.ReceiptURL != nil && *in.ReceiptURL != "" {
		paymentStatus = domainbooking.PaymentSubmitted
	} else {
		in.ReceiptURL = nil
	}

	b := &models.Booking{
		ID:            idgen.NewID(),
		Reference:     uc.refs.Booking(),
		FacilityID:    f.ID,
		FacilityName:  f.Name,
		UserID:        user.ID,
		UserEmail:     user.Email,
		UserName:      user.Name,
		BookingDate:   in.BookingDate,
		TimeSlot:      in.TimeSlot,
		Purpose:       strings.TrimSpace(in.Purpose),
		ContactNumber: contact,
		Address:       address,
		TotalPrice:    quote.TotalPrice,
		Downpayment:   quote.Downpayment,
		DiscountRate:  quote.DiscountRate,
		Status:        string(domainbooking.InitialStatus()),
		PaymentStatus: paymentStatus,
		ReceiptURL:    in.ReceiptURL,
	}

	if err := uc.bookings.CreateBooking(ctx, b); err != nil {
		return nil, httperr.Internal("failed to create booking", fmt.Errorf("create booking: %w", err))
	}

	uc.audit.Record(ctx, caller.ID, audit.ActionBookingCreated, "booking", b.ID, map[string]any{
		"reference":  b.Reference,
		"facilityId": b.FacilityID,
		"date":       b.BookingDate,
		"timeSlot":   b.TimeSlot,
	})

	return b, nil
}
