package eventrequest

import (
	"context"
	"fmt"
	"time"

	"runoot/logger"
	model "runoot/models/eventrequest"
	"runoot/models/notification"
	dto "runoot/types/eventrequest"
	"runoot/utils"

	"github.com/jinzhu/now"
)

// adminTransitions lists the status moves staff may drive. Team-leader-side
// transitions (resubmission, quote selection) never go through here.
var adminTransitions = map[model.RequestStatus][]model.RequestStatus{
	model.StatusUnderReview: {model.StatusQuoting, model.StatusChangesRequested, model.StatusRejected},
	model.StatusQuoting:     {model.StatusChangesRequested, model.StatusRejected},
	model.StatusApproved:    {model.StatusScheduled},
	model.StatusScheduled:   {model.StatusPublished},
}

func adminCanMove(from, to model.RequestStatus) bool {
	for _, allowed := range adminTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SetStatus applies a staff-driven status transition, logs it, and tells the
// owning team leader.
func (s *Service) SetStatus(ctx context.Context, adminID uint, in dto.SetStatusRequest) (*model.EventRequest, error) {
	if key := in.Validate(); key != "" {
		return nil, &ValidationError{Key: key}
	}

	req, err := s.repo.GetRequest(ctx, in.EventRequestID)
	if err != nil {
		return nil, err
	}

	target := model.RequestStatus(in.Status)
	if !adminCanMove(req.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, req.Status, target)
	}

	ts := time.Now()
	previous := req.Status
	req.Status = target
	req.AdminLastSeenUpdateAt = ts

	note := fmt.Sprintf("Status changed from %s to %s", previous, target)
	if in.Note != "" {
		note = in.Note
	}
	upd := &model.RequestUpdate{
		ActorID:   adminID,
		ActorRole: model.ActorSuperAdmin,
		Action:    model.ActionStatusChanged,
		Note:      &note,
	}

	if err := s.repo.SaveRequest(ctx, req, upd); err != nil {
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	data := notification.Data{Kind: notification.KindTLEventStatusUpdate, EventRequestID: &req.ID}
	err = s.notifier.Send([]uint{req.TeamLeaderID}, notificationType,
		"Request status updated",
		fmt.Sprintf("Your request for %s is now %s.", req.EventName, target),
		data)
	if err != nil {
		logger.Error(fmt.Sprintf("team leader notification failed for request %d", req.ID), err)
	}

	s.sendStatusEmail(ctx, req, target)

	return req, nil
}

// sendStatusEmail mails the owner about a status change off the request path
func (s *Service) sendStatusEmail(ctx context.Context, req *model.EventRequest, target model.RequestStatus) {
	if s.mailer == nil || !s.mailer.Configured() {
		return
	}
	profile, err := s.repo.GetProfile(ctx, req.TeamLeaderID)
	if err != nil || profile.Email == "" {
		logger.Warning(fmt.Sprintf("status email skipped for request %d: no reachable owner", req.ID))
		return
	}
	subject := fmt.Sprintf("Your request for %s is now %s", req.EventName, target)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your request for <b>%s</b> moved to <b>%s</b>. "+
			"Open your dashboard for the details.</p>",
		profile.Username, req.EventName, target)
	s.mailer.SendAsync(profile.Email, subject, body)
}

// SubmitQuote attaches a partner agency offer while the request still
// accepts quotes. The first quote moves an under_review request to quoting.
func (s *Service) SubmitQuote(ctx context.Context, adminID uint, in dto.SubmitQuoteRequest) (*model.Quote, error) {
	if key := in.Validate(); key != "" {
		return nil, &ValidationError{Key: key}
	}

	req, err := s.repo.GetRequest(ctx, in.EventRequestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanReceiveQuotes() {
		return nil, ErrQuotingClosed
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}
	quote := &model.Quote{
		EventRequestID: req.ID,
		AgencyName:     in.AgencyName,
		PackageTitle:   optString(in.PackageTitle),
		TotalPrice:     in.TotalPrice,
		Currency:       currency,
		Summary:        optString(in.Summary),
		AttachmentURL:  optString(in.AttachmentURL),
		IsRecommended:  in.IsRecommended,
	}
	if in.ValidUntil != nil {
		validUntil := now.With(*in.ValidUntil).EndOfDay()
		quote.ValidUntil = &validUntil
	}

	if err := s.repo.CreateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	ts := time.Now()
	if req.Status == model.StatusUnderReview {
		req.Status = model.StatusQuoting
		req.AdminLastSeenUpdateAt = ts
		note := "Quoting started"
		upd := &model.RequestUpdate{
			ActorID:   adminID,
			ActorRole: model.ActorSuperAdmin,
			Action:    model.ActionStatusChanged,
			Note:      &note,
		}
		if err := s.repo.SaveRequest(ctx, req, upd); err != nil {
			return nil, fmt.Errorf("failed to open quoting: %w", err)
		}
	} else {
		if err := s.repo.TouchSeen(ctx, req.ID, model.ActorSuperAdmin, ts); err != nil {
			return nil, fmt.Errorf("failed to refresh watermark: %w", err)
		}
	}

	data := notification.Data{Kind: notification.KindTLEventStatusUpdate, EventRequestID: &req.ID}
	err = s.notifier.Send([]uint{req.TeamLeaderID}, notificationType,
		"New quote available",
		fmt.Sprintf("%s quoted %s for %s.", quote.AgencyName,
			utils.FormatMoney(quote.TotalPrice, quote.Currency), req.EventName),
		data)
	if err != nil {
		logger.Error(fmt.Sprintf("team leader notification failed for request %d", req.ID), err)
	}

	return quote, nil
}

// ReplyToTeamLeader appends a staff message on the thread and notifies the
// owner.
func (s *Service) ReplyToTeamLeader(ctx context.Context, adminID uint, in dto.ReplyRequest) error {
	if key := in.Validate(); key != "" {
		return &ValidationError{Key: key}
	}

	req, err := s.repo.GetRequest(ctx, in.EventRequestID)
	if err != nil {
		return err
	}

	upd := &model.RequestUpdate{
		EventRequestID: req.ID,
		ActorID:        adminID,
		ActorRole:      model.ActorSuperAdmin,
		Action:         model.ActionDirectMessageToTL,
		Note:           &in.Message,
	}
	if err := s.repo.AppendUpdate(ctx, upd); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	if err := s.repo.TouchSeen(ctx, req.ID, model.ActorSuperAdmin, time.Now()); err != nil {
		return fmt.Errorf("failed to refresh watermark: %w", err)
	}

	data := notification.Data{Kind: notification.KindTLEventMessage, EventRequestID: &req.ID}
	err = s.notifier.Send([]uint{req.TeamLeaderID}, notificationType,
		"New message from the Runoot team",
		in.Message,
		data)
	if err != nil {
		logger.Error(fmt.Sprintf("team leader notification failed for request %d", req.ID), err)
	}
	return nil
}
