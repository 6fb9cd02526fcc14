package booking

import "github.com/yelo29/barangayreservetest-1/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const (
	PaymentPending   = "pending"
	PaymentSubmitted = "submitted"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// ===============================
// Validations
// ===============================

// CanTransition allows only pending -> approved and pending -> rejected.
func CanTransition(current, next Status) error {
	if next != StatusApproved && next != StatusRejected {
		return httperr.Validation("Status must be approved or rejected")
	}
	if current != StatusPending {
		return httperr.StaleState("Booking has already been " + string(current))
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
