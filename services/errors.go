package services

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Error taxonomy surfaced to controllers. Everything else coming out of a
// service is a remote store failure and is wrapped with %w.
var (
	ErrUnauthenticated     = errors.New("caller is not authenticated")
	ErrForbidden           = errors.New("caller is not allowed to perform this action")
	ErrUserNotFound        = errors.New("user not found")
	ErrPINNotFound         = errors.New("no user holds that PIN")
	ErrSelfConnection      = errors.New("cannot connect with yourself")
	ErrDuplicateConnection = errors.New("a connection with this user already exists")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrInvalidMatchStatus  = errors.New("invalid match status")
)

// IsPermissionDenied reports whether err is the store rejecting the call at
// its own access-control layer, which gets a distinct user-facing message.
func IsPermissionDenied(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "AccessDeniedException"
	}
	return false
}
