package booking

import (
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

// InDateRange keeps the bookings whose normalized date lies in [start, end].
// start and end must already be YYYY-MM-DD. Bookings whose stored date
// cannot be parsed are dropped and reported through skipped, if set.
func InDateRange(
	bookings []models.Booking,
	start string,
	end string,
	skipped func(models.Booking),
) []models.Booking {

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		d, ok := timezone.NormalizeDate(b.BookingDate)
		if !ok {
			if skipped != nil {
				skipped(b)
			}
			continue
		}
		if timezone.InRange(d, start, end) {
			out = append(out, b)
		}
	}
	return out
}

// OwnedBy keeps the bookings that belong to the given user id or email.
func OwnedBy(bookings []models.Booking, userID, email string) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if (userID != "" && b.UserID == userID) || (email != "" && b.UserEmail == email) {
			out = append(out, b)
		}
	}
	return out
}
