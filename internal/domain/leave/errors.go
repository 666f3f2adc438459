package leave

import "errors"

var (
	// Engine errors
	ErrInvalidRange        = errors.New("start date must not be after end date")
	ErrUnknownCategory     = errors.New("unknown leave category")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingRequest  = errors.New("leave request overlaps an existing request")
	ErrAlreadyDecided      = errors.New("leave request already decided")
	ErrNotPending          = errors.New("leave request is not pending")
	ErrMissingReason       = errors.New("rejection reason is required")
	ErrUnknownAction       = errors.New("unknown leave decision action")
	ErrBalanceMismatch     = errors.New("balance does not belong to the request's employee")

	// Persistence errors
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrBalanceExists        = errors.New("leave balance already exists")
	ErrConcurrentUpdate     = errors.New("leave balance was modified concurrently")
)
