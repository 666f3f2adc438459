package employee_dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimesheetRepo struct {
	timesheet.Repository
	listFn func(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Task, error)
}

func (f *fakeTimesheetRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Task, error) {
	return f.listFn(ctx, employeeID, from, to)
}

type fakeAttendanceRepo struct {
	attendance.Repository
	listFn func(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error)
}

func (f *fakeAttendanceRepo) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
	return f.listFn(ctx, employeeID, month)
}

type fakeBalanceRepo struct {
	leave.BalanceRepository
	getFn func(ctx context.Context, employeeID string) (leave.Balance, error)
}

func (f *fakeBalanceRepo) GetByEmployeeID(ctx context.Context, employeeID string) (leave.Balance, error) {
	return f.getFn(ctx, employeeID)
}

type fakeRequestRepo struct {
	leave.RequestRepository
	listFn func(ctx context.Context, employeeID string, window *leave.DateRange) ([]leave.Request, error)
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string, window *leave.DateRange) ([]leave.Request, error) {
	return f.listFn(ctx, employeeID, window)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func floatPtr(f float64) *float64 { return &f }

var employeeActor = user.Actor{UserID: "user-1", Role: user.RoleEmployee, EmployeeID: "emp-1"}

type fixture struct {
	svc        *EmployeeDashboardServiceImpl
	timesheets *fakeTimesheetRepo
	attendance *fakeAttendanceRepo
	balances   *fakeBalanceRepo
	requests   *fakeRequestRepo
}

func newFixture() *fixture {
	f := &fixture{
		timesheets: &fakeTimesheetRepo{listFn: func(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Task, error) {
			return []timesheet.Task{
				{EmployeeID: employeeID, Date: date("2024-03-05"), StartTime: "09:00", EndTime: "17:00"},
				{EmployeeID: employeeID, Date: date("2024-03-11"), StartTime: "09:00", EndTime: "12:30"},
				{EmployeeID: employeeID, Date: date("2024-03-11"), StartTime: "13:00", EndTime: "17:00"},
				{EmployeeID: employeeID, Date: date("2024-03-13"), StartTime: "09:00", EndTime: "10:15"},
			}, nil
		}},
		attendance: &fakeAttendanceRepo{listFn: func(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
			return []attendance.Entry{
				{EmployeeID: employeeID, Date: date("2024-03-01"), Status: attendance.StatusPresent, HoursWorked: floatPtr(8)},
				{EmployeeID: employeeID, Date: date("2024-03-04"), Status: attendance.StatusPresent, HoursWorked: floatPtr(7.5)},
				{EmployeeID: employeeID, Date: date("2024-03-05"), Status: attendance.StatusPresent, HoursWorked: floatPtr(8)},
				{EmployeeID: employeeID, Date: date("2024-03-06"), Status: attendance.StatusAbsent},
				{EmployeeID: employeeID, Date: date("2024-03-07"), Status: attendance.StatusOnLeave},
			}, nil
		}},
		balances: &fakeBalanceRepo{getFn: func(ctx context.Context, employeeID string) (leave.Balance, error) {
			return leave.Balance{EmployeeID: employeeID, Casual: 8, Sick: 4, Earned: 10}, nil
		}},
		requests: &fakeRequestRepo{listFn: func(ctx context.Context, employeeID string, window *leave.DateRange) ([]leave.Request, error) {
			return []leave.Request{
				{EmployeeID: employeeID, Status: leave.RequestStatusPending, Days: 2},
				{EmployeeID: employeeID, Status: leave.RequestStatusPending, Days: 1},
				{EmployeeID: employeeID, Status: leave.RequestStatusApproved, Days: 2},
				{EmployeeID: employeeID, Status: leave.RequestStatusRejected, Days: 3},
			}, nil
		}},
	}
	f.svc = NewEmployeeDashboardService(f.timesheets, f.attendance, f.balances, f.requests).(*EmployeeDashboardServiceImpl)
	// Wednesday
	f.svc.now = func() time.Time { return time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC) }
	return f
}

func TestGetDashboard(t *testing.T) {
	f := newFixture()

	var gotFrom, gotTo, gotMonth time.Time
	listTasks := f.timesheets.listFn
	f.timesheets.listFn = func(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Task, error) {
		gotFrom, gotTo = from, to
		return listTasks(ctx, employeeID, from, to)
	}
	listEntries := f.attendance.listFn
	f.attendance.listFn = func(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
		gotMonth = month
		return listEntries(ctx, employeeID, month)
	}

	resp, err := f.svc.GetDashboard(context.Background(), employeeActor)
	require.NoError(t, err)

	assert.Equal(t, date("2024-03-04"), gotFrom)
	assert.Equal(t, date("2024-03-17"), gotTo)
	assert.Equal(t, date("2024-03-01"), gotMonth)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2024-03-13", resp.Date)

	assert.Equal(t, "2024-03-11", resp.HoursThisWeek.StartDate)
	assert.Equal(t, "2024-03-17", resp.HoursThisWeek.EndDate)
	assert.Equal(t, 8.75, resp.HoursThisWeek.TotalHours)
	assert.Equal(t, 8.0, resp.HoursThisWeek.PreviousWeekHours)
	require.Len(t, resp.HoursThisWeek.Days, 2)
	assert.Equal(t, "2024-03-11", resp.HoursThisWeek.Days[0].Date)
	assert.Equal(t, 7.5, resp.HoursThisWeek.Days[0].TotalHours)
	assert.Equal(t, 2, resp.HoursThisWeek.Days[0].TaskCount)

	assert.Equal(t, 8, resp.LeaveBalance.Casual)
	assert.Equal(t, 22, resp.LeaveBalance.Total)

	assert.Equal(t, "2024-03", resp.Attendance.Month)
	assert.Equal(t, 3, resp.Attendance.PresentDays)
	assert.Equal(t, 75, resp.Attendance.AttendanceRate)

	assert.Equal(t, 2, resp.PendingRequests)
}

func TestGetDashboard_WeekStartsOnMonday(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{day: "2024-03-11", want: "2024-03-11"},
		{day: "2024-03-13", want: "2024-03-11"},
		{day: "2024-03-17", want: "2024-03-11"},
		{day: "2024-03-01", want: "2024-02-26"},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, date(tt.want), weekStart(date(tt.day)))
		})
	}
}

func TestGetDashboard_RequiresEmployeeProfile(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetDashboard(context.Background(), user.Actor{UserID: "admin-1", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrEmployeeIDRequired)
}

func TestGetDashboard_PropagatesRepositoryErrors(t *testing.T) {
	f := newFixture()
	f.balances.getFn = func(ctx context.Context, employeeID string) (leave.Balance, error) {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	_, err := f.svc.GetDashboard(context.Background(), employeeActor)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	f = newFixture()
	boom := errors.New("connection reset")
	f.requests.listFn = func(ctx context.Context, employeeID string, window *leave.DateRange) ([]leave.Request, error) {
		return nil, boom
	}
	_, err = f.svc.GetDashboard(context.Background(), employeeActor)
	assert.ErrorIs(t, err, boom)
}
