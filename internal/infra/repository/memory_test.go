package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

func TestMemoryStore_UserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@x.com"}))
	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "a@x.com"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMemoryStore_GetMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetBooking(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_UpdateUserProfileTouchesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@x.com", Name: "A", Discount: 0.1}))

	name := "Alice"
	u, err := s.UpdateUserProfile(ctx, "u1", account.ProfilePatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, 0.1, u.Discount)
}

func TestMemoryStore_TransitionBookingIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateBooking(ctx, &models.Booking{ID: "b1", Status: "pending"}))

	first := &models.Booking{ID: "b1", Status: "approved", ApprovedBy: "o1"}
	require.NoError(t, s.TransitionBooking(ctx, first, booking.StatusPending))

	second := &models.Booking{ID: "b1", Status: "rejected"}
	assert.ErrorIs(t, s.TransitionBooking(ctx, second, booking.StatusPending), domain.ErrStale)

	stored, err := s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
	assert.Equal(t, "o1", stored.ApprovedBy)
}

func TestMemoryStore_BookingsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, s.CreateBooking(ctx, &models.Booking{ID: id, FacilityID: "f1", Status: "pending"}))
	}

	list, err := s.ListBookingsByFacility(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b3", list[0].ID)
	assert.Equal(t, "b1", list[2].ID)
}

func TestMemoryStore_UnsyncedApprovals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateAuthRequest(ctx, &models.AuthenticationRequest{ID: "r1", Status: "pending"}))
	require.NoError(t, s.CreateAuthRequest(ctx, &models.AuthenticationRequest{ID: "r2", Status: "pending"}))

	require.NoError(t, s.DecideAuthRequest(ctx,
		&models.AuthenticationRequest{ID: "r1", Status: "approved", UserSynced: false},
		verification.StatusPending))
	require.NoError(t, s.DecideAuthRequest(ctx,
		&models.AuthenticationRequest{ID: "r2", Status: "rejected", UserSynced: true},
		verification.StatusPending))

	list, err := s.ListUnsyncedApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)

	require.NoError(t, s.MarkAuthRequestSynced(ctx, "r1"))
	list, err = s.ListUnsyncedApprovals(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_EventsByDate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateEvent(ctx, &models.BarangayEvent{ID: "late", EventDate: "2026-05-01"}))
	require.NoError(t, s.CreateEvent(ctx, &models.BarangayEvent{ID: "early", EventDate: "2026-03-01"}))

	list, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}

func TestMemoryStore_AuditLogPaging(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateAuditLog(ctx, &models.AuditLog{ID: string(rune('a' + i)), Action: "booking.created"}))
	}
	require.NoError(t, s.CreateAuditLog(ctx, &models.AuditLog{ID: "z", Action: "event.created"}))

	logs, total, err := s.ListAuditLogs(ctx, audit.Filter{Action: "booking.created", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 2)
	assert.Equal(t, "c", logs[0].ID)
	assert.Equal(t, "b", logs[1].ID)
}
