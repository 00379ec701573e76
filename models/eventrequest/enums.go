package eventrequest

// RequestStatus is the lifecycle status of an event request
type RequestStatus string

const (
	StatusUnderReview      RequestStatus = "under_review"
	StatusQuoting          RequestStatus = "quoting"
	StatusChangesRequested RequestStatus = "changes_requested"
	StatusApproved         RequestStatus = "approved"
	StatusScheduled        RequestStatus = "scheduled"
	StatusRejected         RequestStatus = "rejected"
	StatusPublished        RequestStatus = "published"
)

// Helper methods for RequestStatus
func (rs RequestStatus) String() string {
	return string(rs)
}

func (rs RequestStatus) IsValid() bool {
	switch rs {
	case StatusUnderReview, StatusQuoting, StatusChangesRequested, StatusApproved, StatusScheduled, StatusRejected, StatusPublished:
		return true
	default:
		return false
	}
}

// CanBeEdited returns true if the team leader may resubmit the request
func (rs RequestStatus) CanBeEdited() bool {
	return rs == StatusChangesRequested
}

// CanChooseQuote returns true if a quote may be selected
func (rs RequestStatus) CanChooseQuote() bool {
	return rs == StatusQuoting
}

// CanReceiveQuotes returns true if staff may still attach quotes
func (rs RequestStatus) CanReceiveQuotes() bool {
	return rs == StatusUnderReview || rs == StatusQuoting
}

// IsTerminal returns true if the request has reached a final state
func (rs RequestStatus) IsTerminal() bool {
	return rs == StatusRejected || rs == StatusPublished
}

// GetAllRequestStatuses returns all valid request statuses
func GetAllRequestStatuses() []RequestStatus {
	return []RequestStatus{
		StatusUnderReview,
		StatusQuoting,
		StatusChangesRequested,
		StatusApproved,
		StatusScheduled,
		StatusRejected,
		StatusPublished,
	}
}

// RequestType is what the team leader wants quoted
type RequestType string

const (
	RequestTypeBib     RequestType = "bib"
	RequestTypeHotel   RequestType = "hotel"
	RequestTypePackage RequestType = "package"
)

func (rt RequestType) String() string {
	return string(rt)
}

func (rt RequestType) IsValid() bool {
	switch rt {
	case RequestTypeBib, RequestTypeHotel, RequestTypePackage:
		return true
	default:
		return false
	}
}

// ActorRole identifies who wrote an update-log entry
type ActorRole string

const (
	ActorTeamLeader ActorRole = "team_leader"
	ActorSuperAdmin ActorRole = "superadmin"
)

func (ar ActorRole) IsValid() bool {
	return ar == ActorTeamLeader || ar == ActorSuperAdmin
}

// UpdateAction tags each update-log entry with what happened
type UpdateAction string

const (
	ActionCreatedUnderReview     UpdateAction = "created_under_review"
	ActionResubmittedAfterChange UpdateAction = "resubmitted_after_changes"
	ActionDirectMessageToAdmin   UpdateAction = "direct_message_to_admin"
	ActionDirectMessageToTL      UpdateAction = "direct_message_to_tl"
	ActionQuoteSelected          UpdateAction = "quote_selected"
	ActionStatusChanged          UpdateAction = "status_changed"
)

func (ua UpdateAction) String() string {
	return string(ua)
}

func (ua UpdateAction) IsValid() bool {
	switch ua {
	case ActionCreatedUnderReview, ActionResubmittedAfterChange, ActionDirectMessageToAdmin,
		ActionDirectMessageToTL, ActionQuoteSelected, ActionStatusChanged:
		return true
	default:
		return false
	}
}
