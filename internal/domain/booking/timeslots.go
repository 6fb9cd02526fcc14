package booking

import "github.com/yelo29/barangayreservetest-1/internal/models"

// DefaultTimeSlots are the bookable hourly slots; the noon hour is closed.
var DefaultTimeSlots = []string{
	"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00",
	"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00",
	"17:00-18:00", "18:00-19:00", "19:00-20:00",
}

type Availability struct {
	Date        string   `json:"date"`
	FacilityID  string   `json:"facilityId"`
	Available   []string `json:"availableTimeslots"`
	UserBooked  []string `json:"userBookedTimeslots"`
	Competitive []string `json:"competitiveTimeslots"`
	Approved    []string `json:"approvedTimeslots"`
}

// Categorize sorts every slot by the bookings already made on it. Rejected
// bookings are ignored. A slot with only pending bookings stays bookable;
// several users may compete for it until an official approves one.
func Categorize(slots []string, bookings []models.Booking, callerID string) Availability {
	bySlot := map[string][]models.Booking{}
	for _, b := range bookings {
		if Status(b.Status) == StatusRejected {
			continue
		}
		bySlot[b.TimeSlot] = append(bySlot[b.TimeSlot], b)
	}

	av := Availability{
		Available:   []string{},
		UserBooked:  []string{},
		Competitive: []string{},
		Approved:    []string{},
	}

	for _, slot := range slots {
		taken := bySlot[slot]
		switch {
		case len(taken) == 0:
			av.Available = append(av.Available, slot)
		case hasApproved(taken):
			av.Approved = append(av.Approved, slot)
		case len(taken) == 1 && taken[0].UserID == callerID:
			av.UserBooked = append(av.UserBooked, slot)
		default:
			av.Competitive = append(av.Competitive, slot)
		}
	}
	return av
}

func hasApproved(bookings []models.Booking) bool {
	for _, b := range bookings {
		if Status(b.Status) == StatusApproved {
			return true
		}
	}
	return false
}
