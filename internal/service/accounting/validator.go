package accounting

import (
	"fmt"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
)

// ValidateRequest checks a new leave request against the employee's balance and
// existing requests. On success it returns a copy tagged pending with Days set.
func ValidateRequest(req leave.Request, balance leave.Balance, existing []leave.Request) (leave.Request, error) {
	if !req.Category.IsValid() {
		return leave.Request{}, leave.ErrUnknownCategory
	}

	days, err := DaysBetween(req.StartDate, req.EndDate)
	if err != nil {
		return leave.Request{}, err
	}

	available, err := balance.Get(req.Category)
	if err != nil {
		return leave.Request{}, err
	}
	if days > available {
		return leave.Request{}, fmt.Errorf("%w: requested %d %s days, %d available", leave.ErrInsufficientBalance, days, req.Category, available)
	}

	for _, other := range existing {
		if other.EmployeeID != req.EmployeeID || (req.ID != "" && other.ID == req.ID) {
			continue
		}
		if !other.Status.IsActive() {
			continue
		}
		if Overlaps(req.StartDate, req.EndDate, other.StartDate, other.EndDate) {
			return leave.Request{}, fmt.Errorf("%w: conflicts with request %s", leave.ErrOverlappingRequest, other.ID)
		}
	}

	validated := req
	validated.StartDate = CivilDate(req.StartDate)
	validated.EndDate = CivilDate(req.EndDate)
	validated.Days = days
	validated.Status = leave.RequestStatusPending
	validated.DecidedBy = nil
	validated.DecidedAt = nil
	validated.DecisionReason = nil
	return validated, nil
}
