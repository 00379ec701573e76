package eventrequest

import (
	"time"

	"runoot/models/eventrequest"
)

// Error keys surfaced to the client for localized validation banners
const (
	ErrKeyFillRequired = "fill_required"
	ErrKeyBadDate      = "invalid_date"
)

// CreateRequest carries the fields of a new event request. Validate returns
// an error key ("" when the payload is acceptable).
type CreateRequest struct {
	EventName       string     `json:"event_name"`
	EventLocation   string     `json:"event_location"`
	EventCountry    string     `json:"event_country"`
	EventDate       time.Time  `json:"event_date"`
	RequestType     string     `json:"request_type"`
	PeopleCount     int        `json:"people_count"`
	PublicNote      string     `json:"public_note"`
	QuotingNotes    string     `json:"quoting_notes"`
	DesiredDeadline *time.Time `json:"desired_deadline"`
}

func (r CreateRequest) Validate() string {
	if r.EventName == "" || r.EventLocation == "" || r.EventCountry == "" {
		return ErrKeyFillRequired
	}
	if r.EventDate.IsZero() {
		return ErrKeyBadDate
	}
	if !eventrequest.RequestType(r.RequestType).IsValid() {
		return ErrKeyFillRequired
	}
	if r.PeopleCount <= 0 {
		return ErrKeyFillRequired
	}
	return ""
}

// UpdateRequest resubmits a request that staff sent back for changes
type UpdateRequest struct {
	EventRequestID uint `json:"event_request_id"`
	CreateRequest
}

func (r UpdateRequest) Validate() string {
	if r.EventRequestID == 0 {
		return ErrKeyFillRequired
	}
	return r.CreateRequest.Validate()
}

// ChooseQuoteRequest selects one quote on a request in quoting status
type ChooseQuoteRequest struct {
	EventRequestID uint `json:"event_request_id"`
	QuoteID        uint `json:"quote_id"`
}

func (r ChooseQuoteRequest) Validate() string {
	if r.EventRequestID == 0 || r.QuoteID == 0 {
		return ErrKeyFillRequired
	}
	return ""
}

// ReplyRequest posts a direct message on a request thread
type ReplyRequest struct {
	EventRequestID uint   `json:"event_request_id"`
	Message        string `json:"message"`
}

func (r ReplyRequest) Validate() string {
	if r.EventRequestID == 0 || r.Message == "" {
		return ErrKeyFillRequired
	}
	return ""
}

// MarkSeenRequest acknowledges all activity on one request
type MarkSeenRequest struct {
	EventRequestID uint `json:"event_request_id"`
}

func (r MarkSeenRequest) Validate() string {
	if r.EventRequestID == 0 {
		return ErrKeyFillRequired
	}
	return ""
}

// SetStatusRequest is the admin-side status transition payload
type SetStatusRequest struct {
	EventRequestID uint   `json:"event_request_id"`
	Status         string `json:"status"`
	Note           string `json:"note"`
}

func (r SetStatusRequest) Validate() string {
	if r.EventRequestID == 0 {
		return ErrKeyFillRequired
	}
	if !eventrequest.RequestStatus(r.Status).IsValid() {
		return ErrKeyFillRequired
	}
	return ""
}

// SubmitQuoteRequest attaches a partner agency offer to a request
type SubmitQuoteRequest struct {
	EventRequestID uint       `json:"event_request_id"`
	AgencyName     string     `json:"agency_name"`
	PackageTitle   string     `json:"package_title"`
	TotalPrice     float64    `json:"total_price"`
	Currency       string     `json:"currency"`
	ValidUntil     *time.Time `json:"valid_until"`
	Summary        string     `json:"summary"`
	AttachmentURL  string     `json:"attachment_url"`
	IsRecommended  bool       `json:"is_recommended"`
}

func (r SubmitQuoteRequest) Validate() string {
	if r.EventRequestID == 0 || r.AgencyName == "" {
		return ErrKeyFillRequired
	}
	if r.TotalPrice <= 0 {
		return ErrKeyFillRequired
	}
	return ""
}
