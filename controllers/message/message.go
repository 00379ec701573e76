package message

import (
	"errors"
	"fmt"
	"time"

	"runoot/logger"
	"runoot/middleware"
	listingModel "runoot/models/listing"
	messageModel "runoot/models/message"
	"runoot/models/notification"
	"runoot/services/notify"
	"runoot/types"
	messageTypes "runoot/types/message"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MessageController handles buyer/seller conversations on marketplace listings
type MessageController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewMessageController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *MessageController {
	return &MessageController{DB: db, Logger: asyncLogger}
}

// Start opens (or reuses) the caller's conversation on a listing and posts
// the first message
func (mc *MessageController) Start(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var req messageTypes.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var listing listingModel.Listing
	if err := mc.DB.First(&listing, req.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Listing not found",
			})
		}
		logger.Error("failed to load listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
	if listing.OwnerID == callerID {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "You cannot message your own listing",
		})
	}

	now := time.Now()
	conversation := messageModel.Conversation{
		ListingID:     listing.ID,
		BuyerID:       callerID,
		SellerID:      listing.OwnerID,
		LastMessageAt: now,
	}
	var msg messageModel.Message

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ? AND buyer_id = ?", listing.ID, callerID).
			FirstOrCreate(&conversation).Error; err != nil {
			return err
		}
		msg = messageModel.Message{
			ConversationID: conversation.ID,
			SenderID:       callerID,
			Body:           req.Body,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		conversation.LastMessageAt = now
		return tx.Save(&conversation).Error
	})
	if err != nil {
		logger.Error("failed to start conversation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to start conversation",
		})
	}

	mc.notifyCounterpart(listing.OwnerID, listing.EventName, conversation.ID, listing.ID)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Conversation started",
		Data: fiber.Map{
			"conversation": conversation,
			"message":      msg,
		},
	})
}

// Send posts a message into a conversation the caller belongs to
func (mc *MessageController) Send(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var req messageTypes.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	conversation, loadErr := mc.loadParticipating(req.ConversationID, callerID)
	if loadErr != nil {
		return respondConversationError(c, loadErr)
	}

	msg := messageModel.Message{
		ConversationID: conversation.ID,
		SenderID:       callerID,
		Body:           req.Body,
	}
	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		conversation.LastMessageAt = time.Now()
		return tx.Save(conversation).Error
	})
	if err != nil {
		logger.Error("failed to send message", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to send message",
		})
	}

	recipient := conversation.SellerID
	if callerID == conversation.SellerID {
		recipient = conversation.BuyerID
	}
	mc.notifyCounterpart(recipient, conversation.Listing.EventName, conversation.ID, conversation.ListingID)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Message sent",
		Data:    msg,
	})
}

// Index lists the caller's conversations, most recently active first
func (mc *MessageController) Index(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var conversations []messageModel.Conversation
	err = mc.DB.Preload("Listing").Preload("Buyer").Preload("Seller").
		Where("buyer_id = ? OR seller_id = ?", callerID, callerID).
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		logger.Error("failed to list conversations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Conversations retrieved successfully",
		Data:    conversations,
	})
}

// Show lists the messages of one conversation the caller belongs to
func (mc *MessageController) Show(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	conversationID, err := c.ParamsInt("id")
	if err != nil || conversationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid conversation id",
		})
	}

	conversation, loadErr := mc.loadParticipating(uint(conversationID), callerID)
	if loadErr != nil {
		return respondConversationError(c, loadErr)
	}

	var messages []messageModel.Message
	err = mc.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		logger.Error("failed to list messages", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Messages retrieved successfully",
		Data: fiber.Map{
			"conversation": conversation,
			"messages":     messages,
		},
	})
}

// errConversationNotFound covers both missing and not-participating rows, so
// a lookup against someone else's conversation is indistinguishable from a miss.
var errConversationNotFound = errors.New("conversation not found")

// loadParticipating fetches a conversation scoped to its two participants
func (mc *MessageController) loadParticipating(conversationID, callerID uint) (*messageModel.Conversation, error) {
	var conversation messageModel.Conversation
	err := mc.DB.Preload("Listing").
		Where("id = ? AND (buyer_id = ? OR seller_id = ?)", conversationID, callerID, callerID).
		First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// respondConversationError converts a load failure into the response envelope
func respondConversationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Conversation not found",
		})
	}
	logger.Error("failed to load conversation", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// notifyCounterpart records an unread listing_message notification; delivery
// failures are logged and never fail the request.
func (mc *MessageController) notifyCounterpart(recipientID uint, eventName string, conversationID, listingID uint) {
	data := notification.Data{
		Kind:           notification.KindListingMessage,
		ListingID:      &listingID,
		ConversationID: &conversationID,
	}
	err := notify.Send(mc.DB, []uint{recipientID}, "marketplace",
		"New message", fmt.Sprintf("New message about %s", eventName), data)
	if err != nil {
		logger.Warning(fmt.Sprintf("failed to notify profile %d about conversation %d: %v", recipientID, conversationID, err))
	}
}
