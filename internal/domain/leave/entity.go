package leave

import (
	"time"
)

// Category is a leave bucket with its own balance counter.
type Category string

const (
	CategoryCasual Category = "casual"
	CategorySick   Category = "sick"
	CategoryEarned Category = "earned"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryCasual, CategorySick, CategoryEarned}

func (c Category) IsValid() bool {
	switch c {
	case CategoryCasual, CategorySick, CategoryEarned:
		return true
	}
	return false
}

// Balance holds the remaining days per category for one employee.
// Version is bumped on every write and guards concurrent decisions.
type Balance struct {
	EmployeeID string
	Casual     int
	Sick       int
	Earned     int
	Version    int64
	UpdatedAt  time.Time
}

// Get returns the remaining days for a category.
func (b Balance) Get(c Category) (int, error) {
	switch c {
	case CategoryCasual:
		return b.Casual, nil
	case CategorySick:
		return b.Sick, nil
	case CategoryEarned:
		return b.Earned, nil
	}
	return 0, ErrUnknownCategory
}

// With returns a copy of the balance with the category counter set to days.
func (b Balance) With(c Category, days int) (Balance, error) {
	if days < 0 {
		return Balance{}, ErrInsufficientBalance
	}
	switch c {
	case CategoryCasual:
		b.Casual = days
	case CategorySick:
		b.Sick = days
	case CategoryEarned:
		b.Earned = days
	default:
		return Balance{}, ErrUnknownCategory
	}
	return b, nil
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// IsDecided reports whether the status is terminal.
func (s RequestStatus) IsDecided() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// IsActive reports whether a request with this status still holds its dates.
func (s RequestStatus) IsActive() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request entity. StartDate and EndDate are calendar dates stored at UTC midnight.
type Request struct {
	ID         string
	EmployeeID string
	Category   Category

	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason string
	Status RequestStatus

	SubmittedAt    time.Time
	DecidedBy      *string
	DecidedAt      *time.Time
	DecisionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decision carries who decides a request, when, and why.
type Decision struct {
	Actor  string
	Reason string
	At     time.Time
}

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// RequestFilter narrows a request list the way the leave history screen does.
type RequestFilter struct {
	Status *RequestStatus
	Month  *time.Time // matches requests whose start date falls in this month
	Search string     // case-insensitive match on reason or category
}

// RequestStats summarizes a request list.
type RequestStats struct {
	Total        int
	Approved     int
	Pending      int
	Rejected     int
	ApprovedDays int
}
