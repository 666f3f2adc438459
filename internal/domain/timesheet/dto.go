package timesheet

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

// maxRangeDays caps GetRange windows.
const maxRangeDays = 62

type LogTaskRequest struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	// Parsed by Validate
	Day time.Time `json:"-"`
}

// Validate checks presence and formats; ordering of start/end is the calculator's job.
func (r *LogTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.Day = d
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParseRange validates a from/to query pair.
func ParseRange(from, to string) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, okFrom := validator.IsValidDate(from)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	end, okTo := validator.IsValidDate(to)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		} else if end.Sub(start) > maxRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "range must not exceed 62 days",
			})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type TaskResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		EmployeeID:    t.EmployeeID,
		Date:          t.Date.Format(validator.DateLayout),
		Title:         t.Title,
		Description:   t.Description,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		DurationHours: t.DurationHours,
	}
}

type DayTotalResponse struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
	TaskCount  int     `json:"task_count"`
	Complete   bool    `json:"complete"`
}

func NewDayTotalResponse(d DayTotal) DayTotalResponse {
	return DayTotalResponse{
		Date:       d.Date.Format(validator.DateLayout),
		TotalHours: math.Round(d.TotalHours()*100) / 100,
		TaskCount:  d.TaskCount,
		Complete:   d.Complete(),
	}
}

type DayResponse struct {
	DayTotalResponse
	Tasks []TaskResponse `json:"tasks"`
}

type RangeResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	TotalHours float64            `json:"total_hours"`
	Days       []DayTotalResponse `json:"days"`
}
