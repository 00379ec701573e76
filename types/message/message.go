package message

import (
	"fmt"
)

type StartConversationRequest struct {
	ListingID uint   `json:"listing_id"`
	Body      string `json:"body"`
}

func (r StartConversationRequest) Validate() error {
	if r.ListingID == 0 {
		return fmt.Errorf("listing id is required")
	}
	if r.Body == "" {
		return fmt.Errorf("message body is required")
	}
	return nil
}

type SendMessageRequest struct {
	ConversationID uint   `json:"conversation_id"`
	Body           string `json:"body"`
}

func (r SendMessageRequest) Validate() error {
	if r.ConversationID == 0 {
		return fmt.Errorf("conversation id is required")
	}
	if r.Body == "" {
		return fmt.Errorf("message body is required")
	}
	return nil
}
