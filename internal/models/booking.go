package models

import "time"

type Booking struct {
	ID        string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Reference string `gorm:"size:32;index" bson:"reference" json:"reference"`

	FacilityID   string `gorm:"size:36;index" bson:"facilityId" json:"facilityId"`
	FacilityName string `gorm:"size:100" bson:"facilityName" json:"facilityName"`

	UserID    string `gorm:"size:36;index" bson:"userId" json:"userId"`
	UserEmail string `gorm:"size:100;index" bson:"userEmail" json:"userEmail"`
	UserName  string `gorm:"size:100" bson:"userName" json:"userName"`

	// BookingDate is kept as submitted: "2026-02-15" or "February 15, 2026".
	BookingDate   string `gorm:"size:40" bson:"bookingDate" json:"bookingDate"`
	TimeSlot      string `gorm:"size:20" bson:"timeSlot" json:"timeSlot"`
	Purpose       string `gorm:"size:255" bson:"purpose" json:"purpose"`
	ContactNumber string `gorm:"size:30" bson:"contactNumber" json:"contactNumber"`
	Address       string `gorm:"size:255" bson:"address" json:"address"`

	TotalPrice   float64 `bson:"totalPrice" json:"totalPrice"`
	Downpayment  float64 `bson:"downpayment" json:"downpayment"`
	DiscountRate float64 `bson:"discountRate" json:"discountRate"`

	Status        string  `gorm:"size:20;default:'pending';index" bson:"status" json:"status"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" bson:"paymentStatus" json:"paymentStatus"`
	ReceiptURL    *string `gorm:"size:512" bson:"receiptUrl" json:"receiptUrl"`

	ApprovedBy string     `gorm:"size:36" bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	DecidedAt  *time.Time `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
