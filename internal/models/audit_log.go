package models

import "time"

type AuditLog struct {
	ID      string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	ActorID string `gorm:"size:36;index" bson:"actorId" json:"actorId"`
	Action  string `gorm:"size:50;not null;index" bson:"action" json:"action"`

	Entity   string `gorm:"size:50" bson:"entity" json:"entity"`
	EntityID string `gorm:"size:36" bson:"entityId" json:"entityId"`
	Metadata string `gorm:"type:text" bson:"metadata" json:"metadata"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
