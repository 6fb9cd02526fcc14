package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

func TestDecide_ApproveLeavesRequestUnsynced(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	req := &models.AuthenticationRequest{Status: string(StatusPending)}

	require.NoError(t, Decide(req, StatusApproved, "official-1", now))

	assert.Equal(t, string(StatusApproved), req.Status)
	assert.Equal(t, "official-1", req.ApprovedBy)
	assert.False(t, req.UserSynced)
}

func TestDecide_RejectNeedsNoSync(t *testing.T) {
	req := &models.AuthenticationRequest{Status: string(StatusPending)}

	require.NoError(t, Decide(req, StatusRejected, "official-1", time.Now()))

	assert.Equal(t, string(StatusRejected), req.Status)
	assert.True(t, req.UserSynced)
	assert.Nil(t, req.ApprovedAt)
}

func TestDecide_SecondDecisionIsStale(t *testing.T) {
	req := &models.AuthenticationRequest{Status: string(StatusApproved)}

	err := Decide(req, StatusRejected, "official-2", time.Now())

	assert.True(t, httperr.Is(err, httperr.KindStaleState))
	assert.Equal(t, string(StatusApproved), req.Status)
}

func TestDecide_PendingIsNotADecision(t *testing.T) {
	req := &models.AuthenticationRequest{Status: string(StatusPending)}

	err := Decide(req, StatusPending, "official-1", time.Now())

	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestDiscountFor(t *testing.T) {
	p := DefaultDiscountPolicy()

	assert.Equal(t, 0.10, p.DiscountFor(TypeResident))
	assert.Equal(t, 0.05, p.DiscountFor(TypeNonResident))
	assert.Equal(t, 0.0, p.DiscountFor("official"))
}
