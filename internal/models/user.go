package models

import "time"

type User struct {
	ID    string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name  string `gorm:"size:100;not null" bson:"name" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`

	PasswordHash string `gorm:"size:255" bson:"password" json:"-"`
	Role         string `gorm:"size:20;default:'resident'" bson:"role" json:"role"`

	// Only the verification approval path writes these three together.
	IsAuthenticated  bool    `gorm:"default:false" bson:"isAuthenticated" json:"isAuthenticated"`
	VerificationType string  `gorm:"size:20;default:'unverified'" bson:"verificationType" json:"verificationType"`
	Discount         float64 `gorm:"default:0" bson:"discount" json:"discount"`

	ContactNumber string `gorm:"size:30" bson:"contactNumber" json:"contactNumber"`
	Address       string `gorm:"size:255" bson:"address" json:"address"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
