package employee_dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	empDashboard "github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/service/accounting"
	"golang.org/x/sync/errgroup"
)

type EmployeeDashboardServiceImpl struct {
	timesheetRepo  timesheet.Repository
	attendanceRepo attendance.Repository
	balanceRepo    leave.BalanceRepository
	requestRepo    leave.RequestRepository
	now            func() time.Time
}

func NewEmployeeDashboardService(
	timesheetRepo timesheet.Repository,
	attendanceRepo attendance.Repository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
) empDashboard.EmployeeDashboardService {
	return &EmployeeDashboardServiceImpl{
		timesheetRepo:  timesheetRepo,
		attendanceRepo: attendanceRepo,
		balanceRepo:    balanceRepo,
		requestRepo:    requestRepo,
		now:            time.Now,
	}
}

// weekStart returns the Monday on or before day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func roundHours(minutes int64) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// GetDashboard implements empDashboard.EmployeeDashboardService.
func (s *EmployeeDashboardServiceImpl) GetDashboard(ctx context.Context, actor user.Actor) (empDashboard.EmployeeDashboardResponse, error) {
	if actor.EmployeeID == "" {
		return empDashboard.EmployeeDashboardResponse{}, user.ErrEmployeeIDRequired
	}
	employeeID := actor.EmployeeID

	today := accounting.CivilDate(s.now().UTC())
	monday := weekStart(today)
	sunday := monday.AddDate(0, 0, 6)
	previousMonday := monday.AddDate(0, 0, -7)
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		week      empDashboard.WeekHoursResponse
		balance   leave.Balance
		summary   attendance.Summary
		requested leave.RequestStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Hours this week against last week
	g.Go(func() error {
		tasks, err := s.timesheetRepo.ListByEmployeeAndRange(gCtx, employeeID, previousMonday, sunday)
		if err != nil {
			return fmt.Errorf("failed to load timesheet: %w", err)
		}
		week = buildWeek(accounting.DailyTotals(tasks), monday, sunday)
		return nil
	})

	// 2. Leave balance
	g.Go(func() error {
		var err error
		balance, err = s.balanceRepo.GetByEmployeeID(gCtx, employeeID)
		return err
	})

	// 3. Attendance this month
	g.Go(func() error {
		entries, err := s.attendanceRepo.ListByEmployeeAndMonth(gCtx, employeeID, month)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		summary = accounting.Summarize(entries)
		return nil
	})

	// 4. Pending leave requests
	g.Go(func() error {
		requests, err := s.requestRepo.ListByEmployee(gCtx, employeeID, nil)
		if err != nil {
			return fmt.Errorf("failed to load leave requests: %w", err)
		}
		requested = accounting.RequestStats(requests)
		return nil
	})

	if err := g.Wait(); err != nil {
		return empDashboard.EmployeeDashboardResponse{}, err
	}

	return empDashboard.EmployeeDashboardResponse{
		EmployeeID:      employeeID,
		Date:            today.Format(validator.DateLayout),
		HoursThisWeek:   week,
		LeaveBalance:    empDashboard.NewLeaveBalanceResponse(balance),
		Attendance:      attendance.NewSummaryResponse(employeeID, month, summary),
		PendingRequests: requested.Pending,
	}, nil
}

func buildWeek(totals []timesheet.DayTotal, monday, sunday time.Time) empDashboard.WeekHoursResponse {
	week := empDashboard.WeekHoursResponse{
		StartDate: monday.Format(validator.DateLayout),
		EndDate:   sunday.Format(validator.DateLayout),
		Days:      make([]timesheet.DayTotalResponse, 0, 7),
	}

	var current, previous int64
	for _, d := range totals {
		if d.Date.Before(monday) {
			previous += d.TotalMinutes
			continue
		}
		current += d.TotalMinutes
		week.Days = append(week.Days, timesheet.NewDayTotalResponse(d))
	}
	week.TotalHours = roundHours(current)
	week.PreviousWeekHours = roundHours(previous)
	return week
}
