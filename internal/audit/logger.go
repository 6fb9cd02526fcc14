package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// Actions recorded by the use cases.
const (
	ActionUserRegistered     = "user.registered"
	ActionUserUpdated        = "user.updated"
	ActionFacilityCreated    = "facility.created"
	ActionFacilityUpdated    = "facility.updated"
	ActionFacilityDeactivate = "facility.deactivated"
	ActionBookingCreated     = "booking.created"
	ActionBookingDecided     = "booking.decided"
	ActionVerificationSubmit = "verification.submitted"
	ActionVerificationDecide = "verification.decided"
	ActionVerificationSynced = "verification.reconciled"
	ActionEventCreated       = "event.created"
)

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// Offset is the number of records to skip for the filter's page.
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type Store interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error

	// ListAuditLogs returns one page, newest first, and the total match count.
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// Logger writes audit entries synchronously. A failed write is logged and
// never fails the operation being audited.
type Logger struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{store: store, log: log}
}

func (l *Logger) Record(
	ctx context.Context,
	actorID string,
	action string,
	entity string,
	entityID string,
	metadata any,
) {
	if l == nil || l.store == nil {
		return
	}

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ID:       idgen.NewID(),
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	if err := l.store.CreateAuditLog(ctx, &entry); err != nil {
		l.log.Warn("audit write failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	return l.store.ListAuditLogs(ctx, f)
}
