package booking

import (
	"time"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Decide moves a pending booking to approved or rejected. Approval stamps the
// approving official and the decision time.
func Decide(b *models.Booking, next Status, approverID string, now time.Time) error {
	if err := CanTransition(Status(b.Status), next); err != nil {
		return err
	}

	b.Status = string(next)
	b.DecidedAt = &now
	if next == StatusApproved {
		b.ApprovedBy = approverID
		b.ApprovedAt = &now
	}
	return nil
}
