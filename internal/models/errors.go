package models

import "errors"

// Sentinel errors returned by store and service code. Handlers translate
// these into HTTP statuses; everything else is a 500.
var (
	ErrTripNotFound         = errors.New("trip not found")
	ErrInvalidInviteCode    = errors.New("Invalid invite code")
	ErrInvalidInviteLink    = errors.New("Invalid invite link")
	ErrNotTripMember        = errors.New("user is not a member of this trip")
	ErrNotTripOwner         = errors.New("only the trip owner may perform this action")
	ErrMemberNotFound       = errors.New("member not found")
	ErrCannotRemoveOwner    = errors.New("trip owner cannot be removed")
	ErrActiveSessionExists  = errors.New("a voting session is already active for this trip")
	ErrNoActiveSession      = errors.New("no active voting session for this trip")
	ErrInvalidStatusChange  = errors.New("invalid trip status transition")
	ErrNotificationNotFound = errors.New("notification not found")
)
