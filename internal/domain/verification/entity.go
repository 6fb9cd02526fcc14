package verification

import (
	"time"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// Decide moves a pending request to approved or rejected. An approved request
// is left unsynced until the matching user update has been written.
func Decide(req *models.AuthenticationRequest, next Status, approverID string, now time.Time) error {
	if err := CanTransition(Status(req.Status), next); err != nil {
		return err
	}

	req.Status = string(next)
	req.UpdatedAt = now
	if next == StatusApproved {
		req.ApprovedBy = approverID
		req.ApprovedAt = &now
		req.UserSynced = false
		return nil
	}
	req.UserSynced = true
	return nil
}
