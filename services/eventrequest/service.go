package eventrequest

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"runoot/logger"
	model "runoot/models/eventrequest"
	"runoot/models/notification"
	"runoot/services/notify"
	"runoot/services/showcase"
	dto "runoot/types/eventrequest"
	"runoot/utils"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Notifier is the notification fan-out and read-tracking surface the
// workflow depends on.
type Notifier interface {
	Send(recipientIDs []uint, typ, title, message string, data notification.Data) error
	SendToStaff(typ, title, message string, data notification.Data) error
	MarkRequestRead(profileID, eventRequestID uint) error
	Summary(profileID uint) (notify.UnreadSummary, error)
}

// Mailer sends transactional email; failures never fail the triggering
// action.
type Mailer interface {
	Configured() bool
	Send(to, subject, body string) error
	SendAsync(to, subject, body string)
}

// ImageStore persists uploaded request images
type ImageStore interface {
	SaveImage(ownerID, entityID uint, file *multipart.FileHeader) (url string, key string, err error)
	Delete(key string) error
}

// Service implements the event-request state machine. Handlers stay thin:
// the authenticated caller id and a typed input come in, a typed result or
// domain error comes out.
type Service struct {
	repo     Repository
	notifier Notifier
	mailer   Mailer
	images   ImageStore
}

func NewService(repo Repository, notifier Notifier, mailer Mailer, images ImageStore) *Service {
	return &Service{repo: repo, notifier: notifier, mailer: mailer, images: images}
}

const notificationType = "tl_events"

// Warnings collect best-effort side-effect failures that are appended to an
// otherwise successful response.
const (
	warnImageNotStored = "the request was saved, but the image could not be stored"
	warnEmailNotSent   = "the confirmation email could not be sent"
)

// Create inserts a new request in under_review. Image storage and the
// confirmation email are best-effort: their failures come back as warnings,
// never as an error.
func (s *Service) Create(ctx context.Context, callerID uint, in dto.CreateRequest, image *multipart.FileHeader) (*model.EventRequest, []string, error) {
	if key := in.Validate(); key != "" {
		return nil, nil, &ValidationError{Key: key}
	}

	ts := time.Now()
	req := &model.EventRequest{
		TeamLeaderID:  callerID,
		Status:        model.StatusUnderReview,
		EventName:     in.EventName,
		EventLocation: in.EventLocation,
		EventCountry:  in.EventCountry,
		EventDate:     now.With(in.EventDate).BeginningOfDay(),
		RequestType:   model.RequestType(in.RequestType),
		PeopleCount:   in.PeopleCount,
		// Both watermarks start at creation so neither party opens with a
		// false unread signal.
		TLLastSeenUpdateAt:    ts,
		AdminLastSeenUpdateAt: ts,
	}
	if in.PublicNote != "" {
		req.PublicNote = &in.PublicNote
	}
	if in.QuotingNotes != "" {
		req.QuotingNotes = &in.QuotingNotes
	}
	if in.DesiredDeadline != nil {
		deadline := now.With(*in.DesiredDeadline).EndOfDay()
		req.DesiredDeadline = &deadline
	}

	upd := &model.RequestUpdate{
		ActorID:   callerID,
		ActorRole: model.ActorTeamLeader,
		Action:    model.ActionCreatedUnderReview,
	}
	if in.PublicNote != "" {
		upd.Note = &in.PublicNote
	}

	if err := s.repo.CreateRequest(ctx, req, upd); err != nil {
		return nil, nil, fmt.Errorf("failed to create event request: %w", err)
	}

	var warnings []string

	if image != nil {
		url, key, err := s.images.SaveImage(callerID, req.ID, image)
		if err != nil {
			logger.Error(fmt.Sprintf("image store failed for request %d", req.ID), err)
			warnings = append(warnings, warnImageNotStored)
		} else {
			req.ImageURL = &url
			req.ImagePath = &key
			if err := s.repo.SaveRequest(ctx, req, nil); err != nil {
				logger.Error(fmt.Sprintf("failed to attach image to request %d", req.ID), err)
				warnings = append(warnings, warnImageNotStored)
			}
		}
	}

	if warn := s.sendCreationEmail(ctx, callerID, req); warn != "" {
		warnings = append(warnings, warn)
	}

	return req, warnings, nil
}

func (s *Service) sendCreationEmail(ctx context.Context, callerID uint, req *model.EventRequest) string {
	if s.mailer == nil || !s.mailer.Configured() {
		return ""
	}
	profile, err := s.repo.GetProfile(ctx, callerID)
	if err != nil || profile.Email == "" {
		return warnEmailNotSent
	}
	subject := fmt.Sprintf("We received your request for %s", req.EventName)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s request for <b>%s</b> (%d people) is under review. "+
			"We will get back to you with quotes shortly.</p>",
		profile.Username, req.RequestType, req.EventName, req.PeopleCount)
	if err := s.mailer.Send(profile.Email, subject, body); err != nil {
		logger.Error(fmt.Sprintf("confirmation email failed for request %d", req.ID), err)
		return warnEmailNotSent
	}
	return ""
}

// Update resubmits a request that staff sent back for changes. Only the
// owner may edit, and only while the status is exactly changes_requested.
func (s *Service) Update(ctx context.Context, callerID uint, in dto.UpdateRequest, image *multipart.FileHeader) (*model.EventRequest, []string, error) {
	if key := in.Validate(); key != "" {
		return nil, nil, &ValidationError{Key: key}
	}

	req, err := s.repo.GetOwnedRequest(ctx, in.EventRequestID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if !req.Status.CanBeEdited() {
		return nil, nil, ErrNotReady
	}

	req.EventName = in.EventName
	req.EventLocation = in.EventLocation
	req.EventCountry = in.EventCountry
	req.EventDate = now.With(in.EventDate).BeginningOfDay()
	req.RequestType = model.RequestType(in.RequestType)
	req.PeopleCount = in.PeopleCount
	req.PublicNote = optString(in.PublicNote)
	req.QuotingNotes = optString(in.QuotingNotes)
	if in.DesiredDeadline != nil {
		deadline := now.With(*in.DesiredDeadline).EndOfDay()
		req.DesiredDeadline = &deadline
	} else {
		req.DesiredDeadline = nil
	}
	req.Status = model.StatusUnderReview
	req.TLLastSeenUpdateAt = time.Now()

	var warnings []string
	var oldImageKey string

	if image != nil {
		url, key, err := s.images.SaveImage(callerID, req.ID, image)
		if err != nil {
			logger.Error(fmt.Sprintf("image store failed for request %d", req.ID), err)
			warnings = append(warnings, warnImageNotStored)
		} else {
			if req.ImagePath != nil {
				oldImageKey = *req.ImagePath
			}
			req.ImageURL = &url
			req.ImagePath = &key
		}
	}

	upd := &model.RequestUpdate{
		ActorID:   callerID,
		ActorRole: model.ActorTeamLeader,
		Action:    model.ActionResubmittedAfterChange,
		Note:      optString(in.PublicNote),
	}

	if err := s.repo.SaveRequest(ctx, req, upd); err != nil {
		return nil, nil, fmt.Errorf("failed to update event request: %w", err)
	}

	// The old object goes away only after the new one is confirmed written
	// and the row points at it.
	if oldImageKey != "" {
		s.images.Delete(oldImageKey)
	}

	return req, warnings, nil
}

// ChooseQuote selects one quote on a quoting request, approving the request
// and leaving exactly one quote marked selected.
func (s *Service) ChooseQuote(ctx context.Context, callerID uint, in dto.ChooseQuoteRequest) (*model.EventRequest, error) {
	if key := in.Validate(); key != "" {
		return nil, &ValidationError{Key: key}
	}

	req, err := s.repo.GetOwnedRequest(ctx, in.EventRequestID, callerID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanChooseQuote() {
		return nil, ErrNotQuoting
	}

	quote, err := s.repo.GetQuote(ctx, in.QuoteID, req.ID)
	if err != nil {
		return nil, err
	}

	ts := time.Now()
	req.Status = model.StatusApproved
	req.SelectedQuoteID = &quote.ID
	req.SelectedAgencyName = &quote.AgencyName
	req.QuoteSummary = quote.Summary
	req.SelectedQuoteAt = &ts
	req.TLLastSeenUpdateAt = ts

	note := fmt.Sprintf("Selected %s at %s", quote.AgencyName, utils.FormatMoney(quote.TotalPrice, quote.Currency))
	upd := &model.RequestUpdate{
		ActorID:   callerID,
		ActorRole: model.ActorTeamLeader,
		Action:    model.ActionQuoteSelected,
		Note:      &note,
	}

	if err := s.repo.SelectQuote(ctx, req, quote.ID, upd); err != nil {
		return nil, fmt.Errorf("failed to select quote: %w", err)
	}

	data := notification.Data{Kind: notification.KindTLQuoteSelected, EventRequestID: &req.ID}
	err = s.notifier.SendToStaff(notificationType,
		"Quote selected",
		fmt.Sprintf("A quote from %s was selected for %s.", quote.AgencyName, req.EventName),
		data)
	if err != nil {
		logger.Error(fmt.Sprintf("staff notification failed for request %d", req.ID), err)
	}

	return req, nil
}

// ReplyToAdmin appends a direct message on the request thread. Sending also
// marks the thread caught-up from the team leader's side.
func (s *Service) ReplyToAdmin(ctx context.Context, callerID uint, in dto.ReplyRequest) error {
	if key := in.Validate(); key != "" {
		return &ValidationError{Key: key}
	}

	req, err := s.repo.GetOwnedRequest(ctx, in.EventRequestID, callerID)
	if err != nil {
		return err
	}

	upd := &model.RequestUpdate{
		EventRequestID: req.ID,
		ActorID:        callerID,
		ActorRole:      model.ActorTeamLeader,
		Action:         model.ActionDirectMessageToAdmin,
		Note:           &in.Message,
	}
	if err := s.repo.AppendUpdate(ctx, upd); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return s.repo.TouchSeen(ctx, req.ID, model.ActorTeamLeader, time.Now())
}

// MarkSeen refreshes the team leader's watermark and bulk-reads every
// unread status-update or message notification referencing this request.
func (s *Service) MarkSeen(ctx context.Context, callerID uint, in dto.MarkSeenRequest) error {
	if key := in.Validate(); key != "" {
		return &ValidationError{Key: key}
	}

	req, err := s.repo.GetOwnedRequest(ctx, in.EventRequestID, callerID)
	if err != nil {
		return err
	}

	if err := s.repo.TouchSeen(ctx, req.ID, model.ActorTeamLeader, time.Now()); err != nil {
		return fmt.Errorf("failed to refresh watermark: %w", err)
	}
	if err := s.notifier.MarkRequestRead(callerID, req.ID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Overview is the team leader's full read surface: owned requests, the
// update log and quotes grouped by request, the showcase subset, and the
// unread summary backing the badges.
type Overview struct {
	Requests          []model.EventRequest            `json:"requests"`
	UpdatesByRequest  map[uint][]model.RequestUpdate  `json:"updates_by_request"`
	QuotesByRequest   map[uint][]model.Quote          `json:"quotes_by_request"`
	ShowcaseByRequest map[uint][]showcase.Entry       `json:"showcase_by_request"`
	Unread            notify.UnreadSummary            `json:"unread"`
}

func (s *Service) Overview(ctx context.Context, callerID uint) (*Overview, error) {
	requests, err := s.repo.ListOwnedRequests(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests: %w", err)
	}

	ids := make([]uint, len(requests))
	for i := range requests {
		ids[i] = requests[i].ID
	}

	updates, err := s.repo.ListUpdates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load update log: %w", err)
	}
	quotes, err := s.repo.ListQuotes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	unread, err := s.notifier.Summary(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unread summary: %w", err)
	}

	overview := &Overview{
		Requests:          requests,
		UpdatesByRequest:  make(map[uint][]model.RequestUpdate),
		QuotesByRequest:   make(map[uint][]model.Quote),
		ShowcaseByRequest: make(map[uint][]showcase.Entry),
		Unread:            unread,
	}
	for _, upd := range updates {
		overview.UpdatesByRequest[upd.EventRequestID] = append(overview.UpdatesByRequest[upd.EventRequestID], upd)
	}
	for _, q := range quotes {
		overview.QuotesByRequest[q.EventRequestID] = append(overview.QuotesByRequest[q.EventRequestID], q)
	}
	for id, qs := range overview.QuotesByRequest {
		overview.ShowcaseByRequest[id] = showcase.Select(qs)
	}
	return overview, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GormNotifier adapts the notify package to the Notifier interface
type GormNotifier struct {
	db *gorm.DB
}

func NewGormNotifier(db *gorm.DB) *GormNotifier {
	return &GormNotifier{db: db}
}

func (n *GormNotifier) Send(recipientIDs []uint, typ, title, message string, data notification.Data) error {
	return notify.Send(n.db, recipientIDs, typ, title, message, data)
}

func (n *GormNotifier) SendToStaff(typ, title, message string, data notification.Data) error {
	return notify.SendToStaff(n.db, typ, title, message, data)
}

func (n *GormNotifier) MarkRequestRead(profileID, eventRequestID uint) error {
	return notify.MarkRequestRead(n.db, profileID, eventRequestID)
}

func (n *GormNotifier) Summary(profileID uint) (notify.UnreadSummary, error) {
	return notify.Summary(n.db, profileID)
}
