package notify

import (
	"testing"
	"time"

	"runoot/models/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreadRow(t *testing.T, kind notification.Kind, requestID uint) notification.Notification {
	t.Helper()
	payload, err := notification.EncodeData(notification.Data{
		Kind:           kind,
		EventRequestID: &requestID,
	})
	require.NoError(t, err)
	return notification.Notification{RecipientID: 7, Data: payload}
}

func TestClassifyBucketsByKind(t *testing.T) {
	rows := []notification.Notification{
		unreadRow(t, notification.KindTLEventMessage, 1),
		unreadRow(t, notification.KindTLEventMessage, 1),
		unreadRow(t, notification.KindTLEventStatusUpdate, 1),
		unreadRow(t, notification.KindTLEventStatusUpdate, 2),
		unreadRow(t, notification.KindTLQuoteSelected, 2),
	}

	summary := Classify(rows)

	assert.Equal(t, 5, summary.TotalUnread)
	assert.Equal(t, 2, summary.MessageUnreadByRequest[1])
	assert.Equal(t, 1, summary.StatusUnreadByRequest[1])
	assert.Equal(t, 2, summary.StatusUnreadByRequest[2])
	assert.Zero(t, summary.MessageUnreadByRequest[2])
}

func TestClassifySkipsReadRows(t *testing.T) {
	readAt := time.Now()
	read := unreadRow(t, notification.KindTLEventMessage, 1)
	read.ReadAt = &readAt

	summary := Classify([]notification.Notification{
		read,
		unreadRow(t, notification.KindTLEventMessage, 1),
	})

	assert.Equal(t, 1, summary.TotalUnread)
	assert.Equal(t, 1, summary.MessageUnreadByRequest[1])
}

func TestClassifyUnknownKindCountsOnlyInTotal(t *testing.T) {
	rows := []notification.Notification{
		unreadRow(t, "someday_kind", 1),
		unreadRow(t, notification.KindListingMessage, 1),
	}

	summary := Classify(rows)

	assert.Equal(t, 2, summary.TotalUnread)
	assert.Empty(t, summary.MessageUnreadByRequest)
	assert.Empty(t, summary.StatusUnreadByRequest)
}

func TestClassifyToleratesEmptyAndBrokenPayloads(t *testing.T) {
	rows := []notification.Notification{
		{RecipientID: 7},                        // no payload at all
		{RecipientID: 7, Data: []byte("{oops")}, // undecodable payload
		unreadRow(t, notification.KindTLEventStatusUpdate, 3),
	}

	summary := Classify(rows)

	assert.Equal(t, 3, summary.TotalUnread)
	assert.Equal(t, 1, summary.StatusUnreadByRequest[3])
	assert.Empty(t, summary.MessageUnreadByRequest)
}

func TestClassifyMissingRequestIDStaysOutOfTheMaps(t *testing.T) {
	payload, err := notification.EncodeData(notification.Data{Kind: notification.KindTLEventMessage})
	require.NoError(t, err)

	summary := Classify([]notification.Notification{{RecipientID: 7, Data: payload}})

	assert.Equal(t, 1, summary.TotalUnread)
	assert.Empty(t, summary.MessageUnreadByRequest)
}

func TestMarkReadKindsCoverEveryClassifiedKind(t *testing.T) {
	requestID := uint(1)
	for _, kind := range []notification.Kind{
		notification.KindTLEventMessage,
		notification.KindTLEventStatusUpdate,
		notification.KindTLQuoteSelected,
	} {
		summary := Classify([]notification.Notification{unreadRow(t, kind, requestID)})
		bucketed := summary.MessageUnreadByRequest[requestID] + summary.StatusUnreadByRequest[requestID]
		require.Equal(t, 1, bucketed, "kind %s not bucketed", kind)
		assert.Contains(t, requestReadKinds, kind.String(),
			"kind %s counts toward a request's unread totals but a mark-read sweep would leave it unread", kind)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	summary := Classify(nil)
	assert.Zero(t, summary.TotalUnread)
	assert.NotNil(t, summary.MessageUnreadByRequest)
	assert.NotNil(t, summary.StatusUnreadByRequest)
}
