package eventrequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreate() CreateRequest {
	return CreateRequest{
		EventName:     "Valencia Marathon",
		EventLocation: "Valencia",
		EventCountry:  "Spain",
		EventDate:     time.Date(2026, 12, 6, 0, 0, 0, 0, time.UTC),
		RequestType:   "package",
		PeopleCount:   12,
	}
}

func TestCreateRequestValidate(t *testing.T) {
	assert.Empty(t, validCreate().Validate())

	missingName := validCreate()
	missingName.EventName = ""
	assert.Equal(t, ErrKeyFillRequired, missingName.Validate())

	missingDate := validCreate()
	missingDate.EventDate = time.Time{}
	assert.Equal(t, ErrKeyBadDate, missingDate.Validate())

	badType := validCreate()
	badType.RequestType = "flight"
	assert.Equal(t, ErrKeyFillRequired, badType.Validate())

	zeroPeople := validCreate()
	zeroPeople.PeopleCount = 0
	assert.Equal(t, ErrKeyFillRequired, zeroPeople.Validate())

	negativePeople := validCreate()
	negativePeople.PeopleCount = -3
	assert.Equal(t, ErrKeyFillRequired, negativePeople.Validate())
}

func TestUpdateRequestValidate(t *testing.T) {
	ok := UpdateRequest{EventRequestID: 5, CreateRequest: validCreate()}
	assert.Empty(t, ok.Validate())

	noID := UpdateRequest{CreateRequest: validCreate()}
	assert.Equal(t, ErrKeyFillRequired, noID.Validate())
}

func TestChooseQuoteRequestValidate(t *testing.T) {
	assert.Empty(t, ChooseQuoteRequest{EventRequestID: 1, QuoteID: 2}.Validate())
	assert.Equal(t, ErrKeyFillRequired, ChooseQuoteRequest{QuoteID: 2}.Validate())
	assert.Equal(t, ErrKeyFillRequired, ChooseQuoteRequest{EventRequestID: 1}.Validate())
}

func TestReplyRequestValidate(t *testing.T) {
	assert.Empty(t, ReplyRequest{EventRequestID: 1, Message: "hi"}.Validate())
	assert.Equal(t, ErrKeyFillRequired, ReplyRequest{EventRequestID: 1}.Validate())
	assert.Equal(t, ErrKeyFillRequired, ReplyRequest{Message: "hi"}.Validate())
}

func TestSetStatusRequestValidate(t *testing.T) {
	assert.Empty(t, SetStatusRequest{EventRequestID: 1, Status: "quoting"}.Validate())
	assert.Equal(t, ErrKeyFillRequired, SetStatusRequest{EventRequestID: 1, Status: "archived"}.Validate())
	assert.Equal(t, ErrKeyFillRequired, SetStatusRequest{Status: "quoting"}.Validate())
}

func TestSubmitQuoteRequestValidate(t *testing.T) {
	ok := SubmitQuoteRequest{EventRequestID: 1, AgencyName: "RunTravel", TotalPrice: 900}
	assert.Empty(t, ok.Validate())

	noAgency := SubmitQuoteRequest{EventRequestID: 1, TotalPrice: 900}
	assert.Equal(t, ErrKeyFillRequired, noAgency.Validate())

	freeQuote := SubmitQuoteRequest{EventRequestID: 1, AgencyName: "RunTravel"}
	assert.Equal(t, ErrKeyFillRequired, freeQuote.Validate())
}
