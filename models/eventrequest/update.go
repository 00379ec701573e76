package eventrequest

import (
	"time"
)

// RequestUpdate is one append-only audit-trail entry: a conversational turn
// or a system action against an event request. Rows are never updated or
// deleted once written.
type RequestUpdate struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the owning event request
	EventRequestID uint         `gorm:"not null;index" json:"event_request_id"`
	EventRequest   EventRequest `gorm:"foreignKey:EventRequestID" json:"event_request"`

	ActorID   uint         `gorm:"not null" json:"actor_id"`
	ActorRole ActorRole    `gorm:"type:varchar(20);not null" json:"actor_role"`
	Action    UpdateAction `gorm:"type:varchar(50);not null;index" json:"action"`
	Note      *string      `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the RequestUpdate model
func (RequestUpdate) TableName() string {
	return "event_request_updates"
}
