package account

import (
	"context"

	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// ProfilePatch lists the only user fields a user may change on their own.
type ProfilePatch struct {
	Name          *string
	ContactNumber *string
	Address       *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.ContactNumber == nil && p.Address == nil
}

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	UpdateUserProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error)

	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
}
