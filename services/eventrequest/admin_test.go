package eventrequest

import (
	"context"
	"testing"
	"time"

	model "runoot/models/eventrequest"
	"runoot/models/notification"
	"runoot/models/user"
	dto "runoot/types/eventrequest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusAllowsConfiguredTransitions(t *testing.T) {
	cases := []struct {
		from model.RequestStatus
		to   model.RequestStatus
	}{
		{model.StatusUnderReview, model.StatusQuoting},
		{model.StatusUnderReview, model.StatusChangesRequested},
		{model.StatusUnderReview, model.StatusRejected},
		{model.StatusQuoting, model.StatusChangesRequested},
		{model.StatusQuoting, model.StatusRejected},
		{model.StatusApproved, model.StatusScheduled},
		{model.StatusScheduled, model.StatusPublished},
	}

	for _, tc := range cases {
		var savedUpd *model.RequestUpdate
		repo := &mockRepository{
			getRequest: func(requestID uint) (*model.EventRequest, error) {
				return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: tc.from}, nil
			},
			saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error {
				savedUpd = upd
				return nil
			},
		}
		svc := newTestService(repo, &mockNotifier{})

		req, err := svc.SetStatus(context.Background(), 99, dto.SetStatusRequest{
			EventRequestID: 1,
			Status:         string(tc.to),
		})
		require.NoError(t, err, "%s to %s should be allowed", tc.from, tc.to)
		assert.Equal(t, tc.to, req.Status)
		require.NotNil(t, savedUpd)
		assert.Equal(t, model.ActionStatusChanged, savedUpd.Action)
		assert.Equal(t, model.ActorSuperAdmin, savedUpd.ActorRole)
	}
}

func TestSetStatusRejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		from model.RequestStatus
		to   model.RequestStatus
	}{
		{model.StatusUnderReview, model.StatusApproved},
		{model.StatusUnderReview, model.StatusPublished},
		{model.StatusQuoting, model.StatusApproved}, // approval only via quote selection
		{model.StatusChangesRequested, model.StatusQuoting},
		{model.StatusApproved, model.StatusPublished},
		{model.StatusRejected, model.StatusUnderReview},
		{model.StatusPublished, model.StatusScheduled},
	}

	for _, tc := range cases {
		saved := false
		repo := &mockRepository{
			getRequest: func(requestID uint) (*model.EventRequest, error) {
				return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: tc.from}, nil
			},
			saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error {
				saved = true
				return nil
			},
		}
		svc := newTestService(repo, &mockNotifier{})

		_, err := svc.SetStatus(context.Background(), 99, dto.SetStatusRequest{
			EventRequestID: 1,
			Status:         string(tc.to),
		})
		assert.ErrorIs(t, err, ErrIllegalTransition, "%s to %s must be rejected", tc.from, tc.to)
		assert.False(t, saved, "%s to %s must not be persisted", tc.from, tc.to)
	}
}

func TestSetStatusNotifiesTheOwner(t *testing.T) {
	var recipients []uint
	var data notification.Data
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusUnderReview}, nil
		},
		saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error { return nil },
	}
	notifier := &mockNotifier{
		send: func(ids []uint, typ, title, message string, d notification.Data) error {
			recipients = ids
			data = d
			return nil
		},
	}
	svc := newTestService(repo, notifier)

	_, err := svc.SetStatus(context.Background(), 99, dto.SetStatusRequest{
		EventRequestID: 1,
		Status:         string(model.StatusQuoting),
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, recipients)
	assert.Equal(t, notification.KindTLEventStatusUpdate, data.Kind)
}

func TestSetStatusEmailsTheOwner(t *testing.T) {
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusUnderReview, EventName: "Berlin Marathon"}, nil
		},
		saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error { return nil },
		getProfile: func(profileID uint) (*user.Profile, error) {
			assert.Equal(t, uint(7), profileID)
			return &user.Profile{ID: profileID, Username: "lena", Email: "lena@example.com"}, nil
		},
	}
	mail := &mockMailer{configured: true}
	svc := NewService(repo, &mockNotifier{}, mail, &mockImageStore{})

	_, err := svc.SetStatus(context.Background(), 99, dto.SetStatusRequest{
		EventRequestID: 1,
		Status:         string(model.StatusQuoting),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lena@example.com"}, mail.async)
	assert.Zero(t, mail.sent, "status mail must go through the async path")
}

func TestSetStatusSkipsEmailWhenMailerNotConfigured(t *testing.T) {
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusUnderReview}, nil
		},
		saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error { return nil },
	}
	mail := &mockMailer{configured: false}
	svc := NewService(repo, &mockNotifier{}, mail, &mockImageStore{})

	_, err := svc.SetStatus(context.Background(), 99, dto.SetStatusRequest{
		EventRequestID: 1,
		Status:         string(model.StatusRejected),
	})
	require.NoError(t, err)
	assert.Empty(t, mail.async)
}

func TestSubmitQuoteFirstQuoteOpensQuoting(t *testing.T) {
	var savedReq *model.EventRequest
	var createdQuote *model.Quote
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusUnderReview, EventName: "Berlin Marathon"}, nil
		},
		createQuote: func(q *model.Quote) error {
			createdQuote = q
			return nil
		},
		saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error {
			savedReq = req
			return nil
		},
	}
	svc := newTestService(repo, &mockNotifier{})

	quote, err := svc.SubmitQuote(context.Background(), 99, dto.SubmitQuoteRequest{
		EventRequestID: 1,
		AgencyName:     "RunTravel",
		TotalPrice:     900,
	})
	require.NoError(t, err)
	require.NotNil(t, createdQuote)
	assert.Equal(t, "EUR", quote.Currency, "currency defaults to EUR")
	require.NotNil(t, savedReq)
	assert.Equal(t, model.StatusQuoting, savedReq.Status)
}

func TestSubmitQuoteLaterQuotesOnlyTouchTheWatermark(t *testing.T) {
	saved := false
	var touchedActor model.ActorRole
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusQuoting}, nil
		},
		createQuote: func(q *model.Quote) error { return nil },
		saveRequest: func(req *model.EventRequest, upd *model.RequestUpdate) error {
			saved = true
			return nil
		},
		touchSeen: func(requestID uint, actor model.ActorRole, at time.Time) error {
			touchedActor = actor
			return nil
		},
	}
	svc := newTestService(repo, &mockNotifier{})

	_, err := svc.SubmitQuote(context.Background(), 99, dto.SubmitQuoteRequest{
		EventRequestID: 1,
		AgencyName:     "RunTravel",
		TotalPrice:     700,
	})
	require.NoError(t, err)
	assert.False(t, saved, "a request already in quoting must not be re-saved")
	assert.Equal(t, model.ActorSuperAdmin, touchedActor)
}

func TestSubmitQuoteRejectedOnceQuotingClosed(t *testing.T) {
	for _, status := range model.GetAllRequestStatuses() {
		if status.CanReceiveQuotes() {
			continue
		}
		created := false
		repo := &mockRepository{
			getRequest: func(requestID uint) (*model.EventRequest, error) {
				return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: status}, nil
			},
			createQuote: func(q *model.Quote) error {
				created = true
				return nil
			},
		}
		svc := newTestService(repo, &mockNotifier{})

		_, err := svc.SubmitQuote(context.Background(), 99, dto.SubmitQuoteRequest{
			EventRequestID: 1,
			AgencyName:     "RunTravel",
			TotalPrice:     700,
		})
		assert.ErrorIs(t, err, ErrQuotingClosed, "status %s must not accept quotes", status)
		assert.False(t, created, "status %s must not create a quote", status)
	}
}

func TestReplyToTeamLeaderNotifiesWithMessageKind(t *testing.T) {
	var appended *model.RequestUpdate
	var data notification.Data
	repo := &mockRepository{
		getRequest: func(requestID uint) (*model.EventRequest, error) {
			return &model.EventRequest{ID: requestID, TeamLeaderID: 7, Status: model.StatusQuoting}, nil
		},
		appendUpdate: func(upd *model.RequestUpdate) error {
			appended = upd
			return nil
		},
		touchSeen: func(requestID uint, actor model.ActorRole, at time.Time) error { return nil },
	}
	notifier := &mockNotifier{
		send: func(ids []uint, typ, title, message string, d notification.Data) error {
			data = d
			return nil
		},
	}
	svc := newTestService(repo, notifier)

	err := svc.ReplyToTeamLeader(context.Background(), 99, dto.ReplyRequest{EventRequestID: 3, Message: "two quotes coming tomorrow"})
	require.NoError(t, err)

	require.NotNil(t, appended)
	assert.Equal(t, model.ActionDirectMessageToTL, appended.Action)
	assert.Equal(t, notification.KindTLEventMessage, data.Kind)
}
