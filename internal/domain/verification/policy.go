package verification

// DiscountPolicy maps a verification type to the fractional discount a
// verified user receives on every later booking.
type DiscountPolicy struct {
	Resident    float64
	NonResident float64
}

func DefaultDiscountPolicy() DiscountPolicy {
	return DiscountPolicy{Resident: 0.10, NonResident: 0.05}
}

func (p DiscountPolicy) DiscountFor(verificationType string) float64 {
	switch verificationType {
	case TypeResident:
		return p.Resident
	case TypeNonResident:
		return p.NonResident
	}
	return 0
}
