package hierarchy

import (
	"errors"
	"fmt"
)

// ErrDataQuality marks input that violates the referral forest invariant.
// It is surfaced to the caller and never auto-resolved.
var ErrDataQuality = errors.New("referral data quality error")

// DuplicateReferralError is returned when a user is referred by two different affiliates.
type DuplicateReferralError struct {
	ReferredUserID string
	ExistingID     string // affiliate already linked to the user
	ConflictingID  string // affiliate claimed by the rejected event
}

func (e *DuplicateReferralError) Error() string {
	return fmt.Sprintf("user %q is referred by both %q and %q",
		e.ReferredUserID, e.ExistingID, e.ConflictingID)
}

// Is lets callers match the whole data-quality class with errors.Is.
func (e *DuplicateReferralError) Is(target error) bool {
	return target == ErrDataQuality
}

// SelfReferralError is returned when an event has the same affiliate and referred user.
type SelfReferralError struct {
	UserID string
}

func (e *SelfReferralError) Error() string {
	return fmt.Sprintf("user %q refers itself", e.UserID)
}

func (e *SelfReferralError) Is(target error) bool {
	return target == ErrDataQuality
}
