package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordEntryRequest struct {
	// EmployeeID is honoured for admins only; employees always record their own day.
	EmployeeID  string   `json:"employee_id,omitempty"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	TasksLogged *int     `json:"tasks_logged,omitempty"`

	// Parsed by Validate
	Day time.Time `json:"-"`
}

func (r *RecordEntryRequest) Validate() error {
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

	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, on_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	TasksLogged *int     `json:"tasks_logged,omitempty"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		EmployeeID:  e.EmployeeID,
		Date:        e.Date.Format(validator.DateLayout),
		Status:      string(e.Status),
		HoursWorked: e.HoursWorked,
		TasksLogged: e.TasksLogged,
	}
}

type SummaryResponse struct {
	EmployeeID     string  `json:"employee_id,omitempty"`
	Month          string  `json:"month"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	LeaveDays      int     `json:"leave_days"`
	AbsentDays     int     `json:"absent_days"`
	TotalHours     float64 `json:"total_hours"`
	TotalTasks     int     `json:"total_tasks"`
	AttendanceRate int     `json:"attendance_rate"`
}

func NewSummaryResponse(employeeID string, month time.Time, s Summary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:     employeeID,
		Month:          month.Format(validator.MonthLayout),
		TotalDays:      s.TotalDays(),
		PresentDays:    s.PresentDays,
		LeaveDays:      s.LeaveDays,
		AbsentDays:     s.AbsentDays,
		TotalHours:     math.Round(s.TotalHours()*100) / 100,
		TotalTasks:     s.TotalTasks,
		AttendanceRate: s.AttendanceRate(),
	}
}

type MonthReportResponse struct {
	Summary SummaryResponse `json:"summary"`
	Entries []EntryResponse `json:"entries"`
}

type CompanySummaryResponse struct {
	Month      string            `json:"month"`
	Employees  int               `json:"employees"`
	Overall    SummaryResponse   `json:"overall"`
	ByEmployee []SummaryResponse `json:"by_employee"`
}
