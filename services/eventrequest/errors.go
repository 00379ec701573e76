package eventrequest

import (
	"errors"
)

// Domain errors for the event-request workflow. ErrNotFound deliberately
// covers both "does not exist" and "not owned by the caller", so probing for
// other users' requests is indistinguishable from a miss.
var (
	ErrNotFound          = errors.New("event request not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrNotReady          = errors.New("request can only be edited while changes are requested")
	ErrNotQuoting        = errors.New("quote selection is available only in quoting status")
	ErrQuotingClosed     = errors.New("request is no longer accepting quotes")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// ValidationError carries a client-side localization key for a rejected
// payload.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Key
}

// ValidationKey extracts the localization key when err is a validation
// failure.
func ValidationKey(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Key, true
	}
	return "", false
}
