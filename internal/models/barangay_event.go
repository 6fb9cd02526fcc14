package models

import "time"

type BarangayEvent struct {
	ID          string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Title       string `gorm:"size:150;not null" bson:"title" json:"title"`
	Description string `gorm:"type:text" bson:"description" json:"description"`
	Location    string `gorm:"size:255" bson:"location" json:"location"`
	EventDate   string `gorm:"size:10;index" bson:"eventDate" json:"eventDate"`
	CreatedBy   string `gorm:"size:36" bson:"createdBy" json:"createdBy"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
