package employee_dashboard

import (
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
)

// WeekHoursResponse covers Monday to Sunday of the current week.
type WeekHoursResponse struct {
	StartDate         string                       `json:"start_date"`
	EndDate           string                       `json:"end_date"`
	TotalHours        float64                      `json:"total_hours"`
	PreviousWeekHours float64                      `json:"previous_week_hours"`
	Days              []timesheet.DayTotalResponse `json:"days"`
}

type LeaveBalanceResponse struct {
	Casual int `json:"casual"`
	Sick   int `json:"sick"`
	Earned int `json:"earned"`
	Total  int `json:"total"`
}

func NewLeaveBalanceResponse(b leave.Balance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		Casual: b.Casual,
		Sick:   b.Sick,
		Earned: b.Earned,
		Total:  b.Casual + b.Sick + b.Earned,
	}
}

type EmployeeDashboardResponse struct {
	EmployeeID      string                     `json:"employee_id"`
	Date            string                     `json:"date"`
	HoursThisWeek   WeekHoursResponse          `json:"hours_this_week"`
	LeaveBalance    LeaveBalanceResponse       `json:"leave_balance"`
	Attendance      attendance.SummaryResponse `json:"attendance"`
	PendingRequests int                        `json:"pending_requests"`
}
