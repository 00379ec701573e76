package eventrequest

import (
	"runoot/models/user"
	"time"
)

// EventRequest is a team leader's submission asking staff to source a
// hotel/bib/package quote for a race event.
type EventRequest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the owning team leader
	TeamLeaderID uint         `gorm:"not null;index" json:"team_leader_id"`
	TeamLeader   user.Profile `gorm:"foreignKey:TeamLeaderID" json:"team_leader"`

	Status RequestStatus `gorm:"type:varchar(50);not null;default:under_review" json:"status"`

	EventName     string      `gorm:"type:varchar(255);not null" json:"event_name"`
	EventLocation string      `gorm:"type:varchar(255);not null" json:"event_location"`
	EventCountry  string      `gorm:"type:varchar(100);not null" json:"event_country"`
	EventDate     time.Time   `gorm:"not null" json:"event_date"`
	RequestType   RequestType `gorm:"type:varchar(20);not null" json:"request_type"`
	PeopleCount   int         `gorm:"not null" json:"people_count"`

	PublicNote      *string    `gorm:"type:text" json:"public_note,omitempty"`
	QuotingNotes    *string    `gorm:"type:text" json:"quoting_notes,omitempty"`
	DesiredDeadline *time.Time `gorm:"" json:"desired_deadline,omitempty"`

	ImageURL  *string `gorm:"type:varchar(2048)" json:"image_url,omitempty"`
	ImagePath *string `gorm:"type:varchar(1024)" json:"image_path,omitempty"`

	// Denormalized selection snapshot, filled when a quote is chosen
	SelectedQuoteID    *uint      `gorm:"" json:"selected_quote_id,omitempty"`
	SelectedAgencyName *string    `gorm:"type:varchar(255)" json:"selected_agency_name,omitempty"`
	QuoteSummary       *string    `gorm:"type:text" json:"quote_summary,omitempty"`
	SelectedQuoteAt    *time.Time `gorm:"" json:"selected_quote_at,omitempty"`

	// Per-actor read watermarks, independent of the notifications table
	TLLastSeenUpdateAt    time.Time `gorm:"not null" json:"tl_last_seen_update_at"`
	AdminLastSeenUpdateAt time.Time `gorm:"not null" json:"admin_last_seen_update_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the EventRequest model
func (EventRequest) TableName() string {
	return "event_requests"
}
