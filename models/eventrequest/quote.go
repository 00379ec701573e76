package eventrequest

import (
	"time"
)

// Quote is one candidate offer from a partner agency against a request.
// At most one quote per request carries IsSelected = true.
type Quote struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the owning event request
	EventRequestID uint         `gorm:"not null;index" json:"event_request_id"`
	EventRequest   EventRequest `gorm:"foreignKey:EventRequestID" json:"event_request"`

	AgencyName   string  `gorm:"type:varchar(255);not null" json:"agency_name"`
	PackageTitle *string `gorm:"type:varchar(255)" json:"package_title,omitempty"`

	TotalPrice float64 `gorm:"not null" json:"total_price"`
	Currency   string  `gorm:"type:varchar(3);not null;default:EUR" json:"currency"`

	ValidUntil    *time.Time `gorm:"" json:"valid_until,omitempty"`
	Summary       *string    `gorm:"type:text" json:"summary,omitempty"`
	AttachmentURL *string    `gorm:"type:varchar(2048)" json:"attachment_url,omitempty"`

	IsRecommended bool `gorm:"default:false" json:"is_recommended"`
	IsSelected    bool `gorm:"default:false" json:"is_selected"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Quote model
func (Quote) TableName() string {
	return "event_request_quotes"
}
