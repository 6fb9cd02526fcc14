package models

import "time"

type AuthenticationRequest struct {
	ID     string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID string `gorm:"size:36;index" bson:"userId" json:"userId"`

	Name          string `gorm:"size:100" bson:"name" json:"name"`
	Email         string `gorm:"size:100" bson:"email" json:"email"`
	ContactNumber string `gorm:"size:30" bson:"contactNumber" json:"contactNumber"`
	Address       string `gorm:"size:255" bson:"address" json:"address"`

	VerificationType string  `gorm:"size:20" bson:"verificationType" json:"verificationType"`
	ProfileImageURL  *string `gorm:"size:512" bson:"profileImageUrl" json:"profileImageUrl"`
	IDImageURL       *string `gorm:"size:512" bson:"idImageUrl" json:"idImageUrl"`

	Status     string     `gorm:"size:20;default:'pending';index" bson:"status" json:"status"`
	ApprovedBy string     `gorm:"size:36" bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`

	// UserSynced is false while an approval has not yet reached the user record.
	UserSynced bool `gorm:"default:false;index" bson:"userSynced" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
