// Package domain holds the sentinel errors every store driver maps its own
// failures onto, so use cases never depend on a particular driver.
package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrStale means a conditional write found the record in another state.
	ErrStale = errors.New("record is no longer in the expected state")
)
