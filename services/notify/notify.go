package notify

import (
	"fmt"
	"time"

	"runoot/logger"
	"runoot/models/notification"
	"runoot/models/user"

	"gorm.io/gorm"
)

// UnreadSummary is the per-request unread breakdown for one profile. The
// maps only carry recognized kinds; unread rows of unknown kind still count
// toward TotalUnread.
type UnreadSummary struct {
	TotalUnread            int          `json:"total_unread"`
	MessageUnreadByRequest map[uint]int `json:"message_unread_by_request"`
	StatusUnreadByRequest  map[uint]int `json:"status_unread_by_request"`
}

// Classify buckets unread notification rows by payload kind. Pure; rows with
// an undecodable payload or unknown kind stay out of both maps.
func Classify(rows []notification.Notification) UnreadSummary {
	summary := UnreadSummary{
		MessageUnreadByRequest: make(map[uint]int),
		StatusUnreadByRequest:  make(map[uint]int),
	}

	for i := range rows {
		if !rows[i].IsUnread() {
			continue
		}
		summary.TotalUnread++

		data, err := rows[i].DecodeData()
		if err != nil || data.EventRequestID == nil {
			continue
		}

		switch data.Kind {
		case notification.KindTLEventMessage:
			summary.MessageUnreadByRequest[*data.EventRequestID]++
		case notification.KindTLEventStatusUpdate, notification.KindTLQuoteSelected:
			summary.StatusUnreadByRequest[*data.EventRequestID]++
		}
	}
	return summary
}

// Summary loads the profile's unread notifications and classifies them
func Summary(db *gorm.DB, profileID uint) (UnreadSummary, error) {
	var rows []notification.Notification
	err := db.Where("recipient_id = ? AND read_at IS NULL", profileID).Find(&rows).Error
	if err != nil {
		return UnreadSummary{}, fmt.Errorf("failed to load unread notifications: %w", err)
	}
	return Classify(rows), nil
}

// Send inserts one notification per recipient. Failures are logged per
// recipient; the first error is returned after all inserts were attempted.
func Send(db *gorm.DB, recipientIDs []uint, typ, title, message string, data notification.Data) error {
	payload, err := notification.EncodeData(data)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	var firstErr error
	for _, recipientID := range recipientIDs {
		row := notification.Notification{
			RecipientID: recipientID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        payload,
		}
		if err := db.Create(&row).Error; err != nil {
			logger.Error(fmt.Sprintf("failed to notify profile %d", recipientID), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SendToStaff fans a notification out to every admin and superadmin profile
func SendToStaff(db *gorm.DB, typ, title, message string, data notification.Data) error {
	var staffIDs []uint
	err := db.Model(&user.Profile{}).
		Where("role IN ?", []user.Role{user.RoleAdmin, user.RoleSuperAdmin}).
		Pluck("id", &staffIDs).Error
	if err != nil {
		return fmt.Errorf("failed to load staff profiles: %w", err)
	}
	return Send(db, staffIDs, typ, title, message, data)
}

// requestReadKinds is every kind Classify buckets per event request; a
// mark-read sweep must cover all of them so an immediate Summary reads zero
// for the request.
var requestReadKinds = []string{
	notification.KindTLEventStatusUpdate.String(),
	notification.KindTLEventMessage.String(),
	notification.KindTLQuoteSelected.String(),
}

// MarkRequestRead bulk-marks as read every unread notification the profile
// holds for the given event request.
func MarkRequestRead(db *gorm.DB, profileID, eventRequestID uint) error {
	now := time.Now()
	return db.Model(&notification.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", profileID).
		Where("data->>'kind' IN ? AND (data->>'event_request_id')::bigint = ?", requestReadKinds, eventRequestID).
		Update("read_at", now).Error
}
