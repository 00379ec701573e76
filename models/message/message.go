package message

import (
	"runoot/models/listing"
	"runoot/models/user"
	"time"
)

// Conversation is a buyer/seller thread attached to a listing
type Conversation struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ListingID uint            `gorm:"not null;uniqueIndex:idx_conversation_listing_buyer" json:"listing_id"`
	Listing   listing.Listing `gorm:"foreignKey:ListingID" json:"listing"`

	BuyerID uint         `gorm:"not null;uniqueIndex:idx_conversation_listing_buyer" json:"buyer_id"`
	Buyer   user.Profile `gorm:"foreignKey:BuyerID" json:"buyer"`

	SellerID uint         `gorm:"not null;index" json:"seller_id"`
	Seller   user.Profile `gorm:"foreignKey:SellerID" json:"seller"`

	LastMessageAt time.Time `gorm:"not null" json:"last_message_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// Message is one turn in a conversation, append-only
type Message struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ConversationID uint         `gorm:"not null;index" json:"conversation_id"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"conversation"`

	SenderID uint         `gorm:"not null" json:"sender_id"`
	Sender   user.Profile `gorm:"foreignKey:SenderID" json:"sender"`

	Body string `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
