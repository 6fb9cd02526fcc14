package account

import "github.com/yelo29/barangayreservetest-1/internal/models"

const (
	RoleResident = "resident"
	RoleOfficial = "official"
)

const (
	VerificationUnverified  = "unverified"
	VerificationResident    = "resident"
	VerificationNonResident = "non-resident"
	VerificationOfficial    = "official"
)

func IsValidRole(role string) bool {
	return role == RoleResident || role == RoleOfficial
}

// Caller is the authenticated identity carried by a request.
type Caller struct {
	ID    string
	Email string
	Role  string
}

func (c Caller) IsOfficial() bool {
	return c.Role == RoleOfficial
}

// PublicUser is the user view that is safe to return to clients.
type PublicUser struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	IsAuthenticated  bool    `json:"isAuthenticated"`
	Discount         float64 `json:"discount"`
	VerificationType string  `json:"verificationType"`
	ContactNumber    string  `json:"contactNumber,omitempty"`
	Address          string  `json:"address,omitempty"`
}

func Public(u *models.User) PublicUser {
	vt := u.VerificationType
	if vt == "" {
		vt = VerificationUnverified
	}
	return PublicUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		IsAuthenticated:  u.IsAuthenticated,
		Discount:         u.Discount,
		VerificationType: vt,
		ContactNumber:    u.ContactNumber,
		Address:          u.Address,
	}
}
