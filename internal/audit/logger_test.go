package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type recordingStore struct {
	entries []models.AuditLog
	fail    bool
}

func (s *recordingStore) CreateAuditLog(_ context.Context, e *models.AuditLog) error {
	if s.fail {
		return errors.New("store down")
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *recordingStore) ListAuditLogs(context.Context, Filter) ([]models.AuditLog, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

func TestRecord_WritesJSONMetadata(t *testing.T) {
	store := &recordingStore{}
	l := New(store, nil)

	l.Record(context.Background(), "u1", ActionBookingDecided, "booking", "b1", map[string]string{"status": "approved"})

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "u1", e.ActorID)
	assert.Equal(t, "booking", e.Entity)
	assert.JSONEq(t, `{"status":"approved"}`, e.Metadata)
}

func TestRecord_StoreFailureIsSwallowed(t *testing.T) {
	l := New(&recordingStore{fail: true}, nil)

	assert.NotPanics(t, func() {
		l.Record(context.Background(), "u1", ActionEventCreated, "event", "e1", nil)
	})
}

func TestRecord_NilLoggerIsNoop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Record(context.Background(), "u1", ActionEventCreated, "event", "e1", nil)
	})
}

func TestFilterOffset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, Limit: 50}.Offset())
	assert.Equal(t, 100, Filter{Page: 3, Limit: 50}.Offset())
}
