package verification

import "github.com/yelo29/barangayreservetest-1/internal/httperr"

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Verification types a resident may ask for.
const (
	TypeResident    = "resident"
	TypeNonResident = "non-resident"
)

func IsValidType(t string) bool {
	return t == TypeResident || t == TypeNonResident
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
		return httperr.StaleState("Request has already been " + string(current))
	}
	return nil
}
