package notification

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Kind classifies a notification payload. The aggregator only buckets
// recognized kinds; anything else stays in the "other" count.
type Kind string

const (
	KindTLEventStatusUpdate Kind = "tl_event_status_update"
	KindTLEventMessage      Kind = "tl_event_message"
	KindTLQuoteSelected     Kind = "tl_quote_selected"
	KindListingMessage      Kind = "listing_message"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindTLEventStatusUpdate, KindTLEventMessage, KindTLQuoteSelected, KindListingMessage:
		return true
	default:
		return false
	}
}

// Data is the structured payload stored in the notification's JSON column.
type Data struct {
	Kind           Kind  `json:"kind"`
	EventRequestID *uint `json:"event_request_id,omitempty"`
	ListingID      *uint `json:"listing_id,omitempty"`
	ConversationID *uint `json:"conversation_id,omitempty"`
}

// Notification is a per-user inbox entry referencing a request-related event
type Notification struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	RecipientID uint   `gorm:"not null;index" json:"recipient_id"`
	Type        string `gorm:"type:varchar(50);not null" json:"type"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Message     string `gorm:"type:text" json:"message"`

	Data datatypes.JSON `gorm:"type:jsonb" json:"data"`

	ReadAt *time.Time `gorm:"index" json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// DecodeData unmarshals the JSON payload into a typed Data value.
// A row with no payload decodes to the zero value.
func (n *Notification) DecodeData() (Data, error) {
	var d Data
	if len(n.Data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(n.Data, &d); err != nil {
		return d, err
	}
	return d, nil
}

// EncodeData marshals a typed payload into the JSON column format
func EncodeData(d Data) (datatypes.JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// IsUnread reports whether the recipient has not yet acknowledged the entry
func (n *Notification) IsUnread() bool {
	return n.ReadAt == nil
}
