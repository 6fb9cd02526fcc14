package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

func TestCategorize(t *testing.T) {
	slots := []string{"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00", "13:00-14:00"}
	bookings := []models.Booking{
		{UserID: "me", TimeSlot: "09:00-10:00", Status: "pending"},
		{UserID: "other", TimeSlot: "10:00-11:00", Status: "pending"},
		{UserID: "me", TimeSlot: "11:00-12:00", Status: "pending"},
		{UserID: "other", TimeSlot: "11:00-12:00", Status: "approved"},
		{UserID: "other", TimeSlot: "13:00-14:00", Status: "rejected"},
	}

	av := Categorize(slots, bookings, "me")

	assert.Equal(t, []string{"08:00-09:00", "13:00-14:00"}, av.Available)
	assert.Equal(t, []string{"09:00-10:00"}, av.UserBooked)
	assert.Equal(t, []string{"10:00-11:00"}, av.Competitive)
	assert.Equal(t, []string{"11:00-12:00"}, av.Approved)
}

func TestCategorize_NoBookings(t *testing.T) {
	av := Categorize(DefaultTimeSlots, nil, "me")

	assert.Equal(t, DefaultTimeSlots, av.Available)
	assert.Empty(t, av.Approved)
	assert.NotNil(t, av.Competitive)
}
