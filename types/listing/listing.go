package listing

import (
	"fmt"
	"time"

	"runoot/models/listing"
)

type ListingCreateRequest struct {
	Kind          string    `json:"kind"`
	EventName     string    `json:"event_name"`
	EventLocation string    `json:"event_location"`
	EventCountry  string    `json:"event_country"`
	EventDate     time.Time `json:"event_date"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	PeopleCount   int       `json:"people_count"`
}

func (r ListingCreateRequest) Validate() error {
	if !listing.ListingKind(r.Kind).IsValid() {
		return fmt.Errorf("kind must be hotel_room or bib")
	}
	if r.EventName == "" || r.EventLocation == "" || r.EventCountry == "" {
		return fmt.Errorf("event name, location and country are required")
	}
	if r.EventDate.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if r.PeopleCount <= 0 {
		return fmt.Errorf("people count must be greater than zero")
	}
	return nil
}

type ListingUpdateRequest struct {
	ListingCreateRequest
	Status string `json:"status"`
}

func (r ListingUpdateRequest) Validate() error {
	if r.Status != "" && !listing.ListingStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid listing status")
	}
	return r.ListingCreateRequest.Validate()
}
