package models

import "time"

type Facility struct {
	ID          string  `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name        string  `gorm:"size:100;not null" bson:"name" json:"name"`
	Icon        string  `gorm:"size:50" bson:"icon" json:"icon"`
	Description string  `gorm:"size:255" bson:"description" json:"description"`
	Capacity    int     `bson:"capacity" json:"capacity"`
	Rate        float64 `bson:"rate" json:"rate"`
	Downpayment float64 `bson:"downpayment" json:"downpayment"`
	Amenities   string  `gorm:"size:255" bson:"amenities" json:"amenities"`
	Active      bool    `gorm:"not null" bson:"active" json:"active"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
