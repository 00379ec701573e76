package listing

import (
	"runoot/models/user"
	"time"
)

// ListingKind is what is being offered for exchange
type ListingKind string

const (
	KindHotelRoom ListingKind = "hotel_room"
	KindBib       ListingKind = "bib"
)

func (lk ListingKind) IsValid() bool {
	return lk == KindHotelRoom || lk == KindBib
}

// ListingStatus is the marketplace lifecycle of a listing
type ListingStatus string

const (
	StatusActive    ListingStatus = "active"
	StatusReserved  ListingStatus = "reserved"
	StatusSold      ListingStatus = "sold"
	StatusWithdrawn ListingStatus = "withdrawn"
)

func (ls ListingStatus) IsValid() bool {
	switch ls {
	case StatusActive, StatusReserved, StatusSold, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// CanBeEdited returns true while the listing is still on the market
func (ls ListingStatus) CanBeEdited() bool {
	return ls == StatusActive || ls == StatusReserved
}

// Listing is a marathon hotel room or race bib offered on the marketplace
type Listing struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the owning profile
	OwnerID uint         `gorm:"not null;index" json:"owner_id"`
	Owner   user.Profile `gorm:"foreignKey:OwnerID" json:"owner"`

	Kind   ListingKind   `gorm:"type:varchar(20);not null" json:"kind"`
	Status ListingStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`

	EventName     string    `gorm:"type:varchar(255);not null" json:"event_name"`
	EventLocation string    `gorm:"type:varchar(255);not null" json:"event_location"`
	EventCountry  string    `gorm:"type:varchar(100);not null" json:"event_country"`
	EventDate     time.Time `gorm:"not null" json:"event_date"`

	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Currency    string  `gorm:"type:varchar(3);not null;default:EUR" json:"currency"`
	PeopleCount int     `gorm:"not null;default:1" json:"people_count"`

	ImageURL  *string `gorm:"type:varchar(2048)" json:"image_url,omitempty"`
	ImagePath *string `gorm:"type:varchar(1024)" json:"image_path,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}

// SavedListing is a profile's bookmark on a listing, unique per pair
type SavedListing struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ProfileID uint         `gorm:"not null;uniqueIndex:idx_saved_profile_listing" json:"profile_id"`
	Profile   user.Profile `gorm:"foreignKey:ProfileID" json:"profile"`

	ListingID uint    `gorm:"not null;uniqueIndex:idx_saved_profile_listing" json:"listing_id"`
	Listing   Listing `gorm:"foreignKey:ListingID" json:"listing"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the SavedListing model
func (SavedListing) TableName() string {
	return "saved_listings"
}
