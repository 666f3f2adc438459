package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks presence and formats only. Category membership and date order are
// left to the accounting engine so they surface as their own error kinds.
func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.Start = d
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.End = d
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecideLeaveRequestRequest is the body of approve and reject calls.
// Reason is mandatory for rejections; the engine enforces it.
type DecideLeaveRequestRequest struct {
	Reason string `json:"reason"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	if len(r.Reason) > 1000 {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		}}
	}
	return nil
}

// RequestFilterQuery holds the raw query string of a leave history listing.
type RequestFilterQuery struct {
	Status string
	Month  string
	Search string
	From   string
	To     string
}

// Parse validates the query and converts it into a filter and an optional date window.
func (q RequestFilterQuery) Parse() (RequestFilter, *DateRange, error) {
	var (
		errs   validator.ValidationErrors
		filter RequestFilter
		window *DateRange
	)

	if q.Status != "" && q.Status != "all" {
		status := RequestStatus(q.Status)
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, all",
			})
		} else {
			filter.Status = &status
		}
	}

	if q.Month != "" && q.Month != "all" {
		month, ok := validator.IsValidMonth(q.Month)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		} else {
			filter.Month = &month
		}
	}

	filter.Search = strings.TrimSpace(q.Search)

	if q.From != "" || q.To != "" {
		from, okFrom := validator.IsValidDate(q.From)
		to, okTo := validator.IsValidDate(q.To)
		switch {
		case !okFrom:
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		case !okTo:
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		case to.Before(from):
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		default:
			window = &DateRange{From: from, To: to}
		}
	}

	if len(errs) > 0 {
		return RequestFilter{}, nil, errs
	}
	return filter, window, nil
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Category       string  `json:"category"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Days           int     `json:"days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	SubmittedAt    string  `json:"submitted_at"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	DecisionReason *string `json:"decision_reason,omitempty"`
}

func NewLeaveRequestResponse(r Request) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Category:       string(r.Category),
		StartDate:      r.StartDate.Format(validator.DateLayout),
		EndDate:        r.EndDate.Format(validator.DateLayout),
		Days:           r.Days,
		Reason:         r.Reason,
		Status:         string(r.Status),
		SubmittedAt:    r.SubmittedAt.Format(time.RFC3339),
		DecidedBy:      r.DecidedBy,
		DecisionReason: r.DecisionReason,
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

type RequestStatsResponse struct {
	Total        int `json:"total"`
	Approved     int `json:"approved"`
	Pending      int `json:"pending"`
	Rejected     int `json:"rejected"`
	ApprovedDays int `json:"approved_days"`
}

// ListLeaveRequestResponse carries the filtered requests; Stats always cover the
// employee's whole history.
type ListLeaveRequestResponse struct {
	Requests []LeaveRequestResponse `json:"requests"`
	Stats    RequestStatsResponse   `json:"stats"`
}

func NewRequestStatsResponse(s RequestStats) RequestStatsResponse {
	return RequestStatsResponse{
		Total:        s.Total,
		Approved:     s.Approved,
		Pending:      s.Pending,
		Rejected:     s.Rejected,
		ApprovedDays: s.ApprovedDays,
	}
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Casual     int    `json:"casual"`
	Sick       int    `json:"sick"`
	Earned     int    `json:"earned"`
	UpdatedAt  string `json:"updated_at"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID,
		Casual:     b.Casual,
		Sick:       b.Sick,
		Earned:     b.Earned,
		UpdatedAt:  b.UpdatedAt.Format(time.RFC3339),
	}
}
