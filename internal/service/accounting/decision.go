package accounting

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
)

// Decide moves a pending request to approved or rejected. Approval debits the
// request's category by the day span of its dates; rejection leaves the balance untouched and
// needs a non-blank reason. Nothing is returned on error, so callers keep their
// original values.
func Decide(req leave.Request, action leave.Action, decision leave.Decision, balance leave.Balance) (leave.Request, leave.Balance, error) {
	if req.Status.IsDecided() {
		return leave.Request{}, leave.Balance{}, leave.ErrAlreadyDecided
	}
	if req.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.Balance{}, fmt.Errorf("%w: status %q", leave.ErrNotPending, req.Status)
	}
	if action != leave.ActionApprove && action != leave.ActionReject {
		return leave.Request{}, leave.Balance{}, fmt.Errorf("%w: %q", leave.ErrUnknownAction, action)
	}
	if balance.EmployeeID != req.EmployeeID {
		return leave.Request{}, leave.Balance{}, leave.ErrBalanceMismatch
	}

	days, err := DaysBetween(req.StartDate, req.EndDate)
	if err != nil {
		return leave.Request{}, leave.Balance{}, err
	}

	decided := req
	decided.Days = days
	decidedAt := decision.At
	decided.DecidedAt = &decidedAt
	if decision.Actor != "" {
		actor := decision.Actor
		decided.DecidedBy = &actor
	}
	reason := strings.TrimSpace(decision.Reason)
	if reason != "" {
		decided.DecisionReason = &reason
	}

	switch action {
	case leave.ActionApprove:
		available, err := balance.Get(req.Category)
		if err != nil {
			return leave.Request{}, leave.Balance{}, err
		}
		if days > available {
			return leave.Request{}, leave.Balance{}, fmt.Errorf("%w: request needs %d %s days, %d available", leave.ErrInsufficientBalance, days, req.Category, available)
		}
		updated, err := balance.With(req.Category, available-days)
		if err != nil {
			return leave.Request{}, leave.Balance{}, err
		}
		decided.Status = leave.RequestStatusApproved
		return decided, updated, nil

	default:
		if reason == "" {
			return leave.Request{}, leave.Balance{}, leave.ErrMissingReason
		}
		decided.Status = leave.RequestStatusRejected
		return decided, balance, nil
	}
}
