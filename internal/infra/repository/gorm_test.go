package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yelo29/barangayreservetest-1/internal/db"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// newGormStore opens a private in-memory sqlite database with the same
// migrations the Postgres store runs.
func newGormStore(t *testing.T) *GormStore {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return NewGormStore(gdb)
}

func TestMapErr(t *testing.T) {
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapErr(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), domain.ErrDuplicate)
	assert.ErrorIs(t, mapErr(gorm.ErrDuplicatedKey), domain.ErrDuplicate)
	assert.ErrorIs(t, mapErr(gorm.ErrRecordNotFound), domain.ErrNotFound)

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, other, mapErr(other))
	assert.NoError(t, mapErr(nil))
}

func TestGormStore_UserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Name: "A", Email: "a@x.com"}))
	err := s.CreateUser(ctx, &models.User{ID: "u2", Name: "B", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = s.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGormStore_InactiveFacilityStaysInactive(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.CreateFacility(ctx, &models.Facility{ID: "f1", Name: "Old Hall", Active: false}))
	require.NoError(t, s.CreateFacility(ctx, &models.Facility{ID: "f2", Name: "Court", Active: true}))

	got, err := s.GetFacility(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, got.Active)

	active := true
	list, err := s.ListFacilities(ctx, &active)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "f2", list[0].ID)

	inactive := false
	list, err = s.ListFacilities(ctx, &inactive)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "f1", list[0].ID)
}

func TestGormStore_TransitionBookingIsConditional(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.CreateBooking(ctx, &models.Booking{
		ID: "b1", FacilityID: "f1", UserID: "u1", BookingDate: "2026-02-15",
		Status: string(booking.StatusPending),
	}))

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	decision := &models.Booking{
		ID: "b1", Status: string(booking.StatusApproved),
		ApprovedBy: "off-1", ApprovedAt: &now, DecidedAt: &now,
	}
	require.NoError(t, s.TransitionBooking(ctx, decision, booking.StatusPending))

	stored, err := s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusApproved), stored.Status)
	assert.Equal(t, "off-1", stored.ApprovedBy)
	require.NotNil(t, stored.ApprovedAt)

	// A second decision finds the row no longer pending.
	reject := &models.Booking{ID: "b1", Status: string(booking.StatusRejected), DecidedAt: &now}
	assert.ErrorIs(t, s.TransitionBooking(ctx, reject, booking.StatusPending), domain.ErrStale)

	stored, err = s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusApproved), stored.Status)

	missing := &models.Booking{ID: "nope", Status: string(booking.StatusApproved)}
	assert.ErrorIs(t, s.TransitionBooking(ctx, missing, booking.StatusPending), domain.ErrNotFound)
}

func TestGormStore_DecideAuthRequestIsConditional(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.CreateAuthRequest(ctx, &models.AuthenticationRequest{
		ID: "r1", UserID: "u1", VerificationType: verification.TypeResident,
		Status: string(verification.StatusPending), UserSynced: true,
	}))

	now := time.Now()
	req := &models.AuthenticationRequest{ID: "r1", Status: string(verification.StatusPending)}
	require.NoError(t, verification.Decide(req, verification.StatusRejected, "off-1", now))
	require.NoError(t, s.DecideAuthRequest(ctx, req, verification.StatusPending))

	again := &models.AuthenticationRequest{ID: "r1", Status: string(verification.StatusPending)}
	require.NoError(t, verification.Decide(again, verification.StatusApproved, "off-1", now))
	assert.ErrorIs(t, s.DecideAuthRequest(ctx, again, verification.StatusPending), domain.ErrStale)

	ghost := &models.AuthenticationRequest{ID: "nope", Status: string(verification.StatusApproved)}
	assert.ErrorIs(t, s.DecideAuthRequest(ctx, ghost, verification.StatusPending), domain.ErrNotFound)
}

func TestGormStore_ApprovalTransaction(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}))
	for _, req := range []*models.AuthenticationRequest{
		{ID: "r-ok", UserID: "u1", VerificationType: verification.TypeResident},
		{ID: "r-ghost", UserID: "ghost", VerificationType: verification.TypeResident},
	} {
		req.Status = string(verification.StatusPending)
		req.UserSynced = true
		require.NoError(t, s.CreateAuthRequest(ctx, req))
	}

	approve := func(id, userID string) error {
		return s.WithinTransaction(ctx, func(repo verification.Repository) error {
			req, err := repo.GetAuthRequest(ctx, id)
			if err != nil {
				return err
			}
			if err := verification.Decide(req, verification.StatusApproved, "off-1", time.Now()); err != nil {
				return err
			}
			if err := repo.DecideAuthRequest(ctx, req, verification.StatusPending); err != nil {
				return err
			}
			if err := repo.ApplyUserVerification(ctx, userID, req.VerificationType, 0.10); err != nil {
				return err
			}
			return repo.MarkAuthRequestSynced(ctx, id)
		})
	}

	t.Run("user write fails so the request stays pending", func(t *testing.T) {
		err := approve("r-ghost", "ghost")
		require.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

		req, err := s.GetAuthRequest(ctx, "r-ghost")
		require.NoError(t, err)
		assert.Equal(t, string(verification.StatusPending), req.Status)
		assert.Empty(t, req.ApprovedBy)
		assert.True(t, req.UserSynced)
	})

	t.Run("both writes commit together", func(t *testing.T) {
		require.NoError(t, approve("r-ok", "u1"))

		req, err := s.GetAuthRequest(ctx, "r-ok")
		require.NoError(t, err)
		assert.Equal(t, string(verification.StatusApproved), req.Status)
		assert.True(t, req.UserSynced)

		u, err := s.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, u.IsAuthenticated)
		assert.Equal(t, verification.TypeResident, u.VerificationType)
		assert.InDelta(t, 0.10, u.Discount, 1e-9)

		unsynced, err := s.ListUnsyncedApprovals(ctx)
		require.NoError(t, err)
		assert.Empty(t, unsynced)
	})
}
