package facility

import (
	"strings"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// Patch holds optional facility changes; nil fields are left untouched.
type Patch struct {
	Name        *string
	Icon        *string
	Description *string
	Capacity    *int
	Rate        *float64
	Downpayment *float64
	Amenities   *string
	Active      *bool
}

func (p Patch) Apply(f *models.Facility) {
	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
	}
	if p.Icon != nil {
		f.Icon = *p.Icon
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Capacity != nil {
		f.Capacity = *p.Capacity
	}
	if p.Rate != nil {
		f.Rate = *p.Rate
	}
	if p.Downpayment != nil {
		f.Downpayment = *p.Downpayment
	}
	if p.Amenities != nil {
		f.Amenities = *p.Amenities
	}
	if p.Active != nil {
		f.Active = *p.Active
	}
}

func Validate(f *models.Facility) error {
	if strings.TrimSpace(f.Name) == "" {
		return httperr.Validation("Facility name is required")
	}
	if f.Rate < 0 || f.Downpayment < 0 || f.Capacity < 0 {
		return httperr.Validation("Capacity, rate and downpayment must not be negative")
	}
	if f.Downpayment > f.Rate {
		return httperr.Validation("Downpayment must not exceed the rate")
	}
	return nil
}
