package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/infra/repository"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type fixture struct {
	store    *repository.MemoryStore
	create   *CreateBooking
	list     *ListBookings
	update   *UpdateBookingStatus
	avail    *GetAvailability
	resident account.Caller
	other    account.Caller
	official account.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	auditLog := audit.New(store, nil)
	fixed := func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }

	users := []models.User{
		{ID: "res-1", Email: "alice@example.com", Name: "Alice", Role: "resident", Discount: 0.10, ContactNumber: "0917"},
		{ID: "res-2", Email: "bob@example.com", Name: "Bob", Role: "resident"},
		{ID: "off-1", Email: "captain@example.com", Name: "Captain", Role: "official"},
	}
	for i := range users {
		require.NoError(t, store.CreateUser(ctx, &users[i]))
	}
	require.NoError(t, store.CreateFacility(ctx, &models.Facility{ID: "court", Name: "Basketball Court", Rate: 500, Downpayment: 200, Active: true}))
	require.NoError(t, store.CreateFacility(ctx, &models.Facility{ID: "hall", Name: "Old Hall", Rate: 300, Active: false}))

	return &fixture{
		store:    store,
		create:   NewCreateBooking(store, store, store, idgen.NewReferences(1), auditLog),
		list:     NewListBookings(store, nil),
		update:   NewUpdateBookingStatus(store, auditLog, fixed),
		avail:    NewGetAvailability(store, store),
		resident: account.Caller{ID: "res-1", Email: "alice@example.com", Role: "resident"},
		other:    account.Caller{ID: "res-2", Email: "bob@example.com", Role: "resident"},
		official: account.Caller{ID: "off-1", Email: "captain@example.com", Role: "official"},
	}
}

func (f *fixture) book(t *testing.T, caller account.Caller, date, slot string) *models.Booking {
	t.Helper()
	b, err := f.create.Execute(context.Background(), caller, CreateBookingInput{
		FacilityID: "court", BookingDate: date, TimeSlot: slot, Purpose: "league",
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking_PricesWithUserDiscount(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, f.resident, "2026-02-15", "08:00-09:00")

	assert.Equal(t, 450.0, b.TotalPrice)
	assert.Equal(t, 180.0, b.Downpayment)
	assert.Equal(t, 0.10, b.DiscountRate)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, "pending", b.PaymentStatus)
	assert.Equal(t, "Basketball Court", b.FacilityName)
	assert.Equal(t, "alice@example.com", b.UserEmail)
	assert.Equal(t, "0917", b.ContactNumber)
	assert.Regexp(t, `^BR-[0-9A-Z]+$`, b.Reference)
}

func TestCreateBooking_ReceiptMarksPaymentSubmitted(t *testing.T) {
	f := newFixture(t)
	url := "https://files.example.com/receipts/res-2/x.png"

	b, err := f.create.Execute(context.Background(), f.other, CreateBookingInput{
		FacilityID: "court", BookingDate: "February 15, 2026", TimeSlot: "09:00-10:00", ReceiptURL: &url,
	})

	require.NoError(t, err)
	assert.Equal(t, "submitted", b.PaymentStatus)
	assert.Equal(t, 500.0, b.TotalPrice)
	assert.Equal(t, "February 15, 2026", b.BookingDate)
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateBookingInput
		kind httperr.Kind
	}{
		{"missing slot", CreateBookingInput{FacilityID: "court", BookingDate: "2026-02-15"}, httperr.KindValidation},
		{"bad date", CreateBookingInput{FacilityID: "court", BookingDate: "someday", TimeSlot: "08:00-09:00"}, httperr.KindValidation},
		{"unknown facility", CreateBookingInput{FacilityID: "pool", BookingDate: "2026-02-15", TimeSlot: "08:00-09:00"}, httperr.KindNotFound},
		{"inactive facility", CreateBookingInput{FacilityID: "hall", BookingDate: "2026-02-15", TimeSlot: "08:00-09:00"}, httperr.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, f.resident, tc.in)
			assert.True(t, httperr.Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestCreateBooking_CheckWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.create.Check(ctx, CreateBookingInput{FacilityID: "pool", BookingDate: "2026-02-15", TimeSlot: "08:00-09:00"})
	assert.True(t, httperr.Is(err, httperr.KindNotFound), "got %v", err)

	err = f.create.Check(ctx, CreateBookingInput{FacilityID: "court", BookingDate: "2026-02-15junk", TimeSlot: "08:00-09:00"})
	assert.True(t, httperr.Is(err, httperr.KindValidation), "got %v", err)

	require.NoError(t, f.create.Check(ctx, CreateBookingInput{FacilityID: "court", BookingDate: " 2026-02-15 ", TimeSlot: "08:00-09:00"}))

	list, err := f.store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListBookings_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, f.resident, "2026-02-15", "08:00-09:00")
	f.book(t, f.other, "2026-02-16", "08:00-09:00")

	_, err := f.list.ByEmail(ctx, f.resident, "bob@example.com")
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	_, err = f.list.ByUser(ctx, f.resident, "res-2")
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	_, err = f.list.ForCaller(ctx, f.resident, "bob@example.com")
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	own, err := f.list.ByEmail(ctx, f.resident, "ALICE@example.com")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	none, err := f.list.ForCaller(ctx, f.resident, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := f.list.ForCaller(ctx, f.official, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.list.Pending(ctx, f.resident)
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	pending, err := f.list.Pending(ctx, f.official)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestListBookings_RangeAcceptsBothDateForms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	iso := f.book(t, f.resident, "2026-02-15", "08:00-09:00")
	long := f.book(t, f.other, "February 15, 2026", "09:00-10:00")
	edge := f.book(t, f.other, "2026-02-28", "10:00-11:00")
	f.book(t, f.other, "March 1, 2026", "10:00-11:00")
	f.book(t, f.other, "2026-01-31", "10:00-11:00")
	require.NoError(t, f.store.CreateBooking(ctx, &models.Booking{ID: "legacy", FacilityID: "court", BookingDate: "sometime", Status: "pending"}))

	got, err := f.list.ByFacilityRange(ctx, f.official, "court", "2026-02-01", "2026-02-28")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, b := range got {
		ids[b.ID] = true
	}
	assert.Equal(t, map[string]bool{iso.ID: true, long.ID: true, edge.ID: true}, ids)

	mine, err := f.list.ByFacilityRange(ctx, f.resident, "court", "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, iso.ID, mine[0].ID)

	sameDay, err := f.list.ByFacilityDate(ctx, f.official, "court", "February 15, 2026")
	require.NoError(t, err)
	assert.Len(t, sameDay, 2)

	_, err = f.list.ByFacilityRange(ctx, f.official, "court", "2026-02-28", "2026-02-01")
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.resident, "2026-02-15", "08:00-09:00")

	_, err := f.update.Execute(ctx, f.resident, b.ID, "approved")
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	_, err = f.update.Execute(ctx, f.official, b.ID, "cancelled")
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	_, err = f.update.Execute(ctx, f.official, "missing", "approved")
	assert.True(t, httperr.Is(err, httperr.KindNotFound))

	approved, err := f.update.Execute(ctx, f.official, b.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "off-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	for _, next := range []string{"pending", "rejected", "approved"} {
		_, err = f.update.Execute(ctx, f.official, b.ID, next)
		assert.Error(t, err, next)
	}

	stored, err := f.store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
	assert.Equal(t, 450.0, stored.TotalPrice)
}

func TestUpdateBookingStatus_ConcurrentDecisionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.resident, "2026-02-15", "08:00-09:00")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		status := "approved"
		if i%2 == 1 {
			status = "rejected"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.update.Execute(ctx, f.official, b.ID, status); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, f.resident, "2026-02-15", "08:00-09:00")
	f.book(t, f.other, "February 15, 2026", "09:00-10:00")
	taken := f.book(t, f.other, "2026-02-15", "10:00-11:00")
	_, err := f.update.Execute(ctx, f.official, taken.ID, "approved")
	require.NoError(t, err)

	av, err := f.avail.Execute(ctx, f.resident, "court", "2026-02-15")
	require.NoError(t, err)

	assert.Equal(t, "2026-02-15", av.Date)
	assert.Equal(t, []string{"08:00-09:00"}, av.UserBooked)
	assert.Equal(t, []string{"09:00-10:00"}, av.Competitive)
	assert.Equal(t, []string{"10:00-11:00"}, av.Approved)
	assert.Len(t, av.Available, 8)

	_, err = f.avail.Execute(ctx, f.resident, "pool", "2026-02-15")
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}
