package booking

import (
	"math"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type Quote struct {
	TotalPrice   float64
	Downpayment  float64
	DiscountRate float64
}

// QuoteFor prices a booking of f for a user holding the given discount rate.
// The quote is fixed at submission and never recomputed.
func QuoteFor(f *models.Facility, discount float64) Quote {
	if discount < 0 || discount >= 1 {
		discount = 0
	}
	factor := 1 - discount
	return Quote{
		TotalPrice:   round2(f.Rate * factor),
		Downpayment:  round2(f.Downpayment * factor),
		DiscountRate: discount,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
