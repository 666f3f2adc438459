package attendance

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeAttendanceRepo struct {
	upsertFn                 func(ctx context.Context, e attendance.Entry) (attendance.Entry, error)
	listByEmployeeAndMonthFn func(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error)
	listByMonthFn            func(ctx context.Context, month time.Time) ([]attendance.Entry, error)
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, e attendance.Entry) (attendance.Entry, error) {
	return f.upsertFn(ctx, e)
}
func (f *fakeAttendanceRepo) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
	return f.listByEmployeeAndMonthFn(ctx, employeeID, month)
}
func (f *fakeAttendanceRepo) ListByMonth(ctx context.Context, month time.Time) ([]attendance.Entry, error) {
	return f.listByMonthFn(ctx, month)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) ExistsByCodeOrEmail(ctx context.Context, code, email string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	return nil
}
func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return []employee.Employee{f.employees["emp-1"], f.employees["emp-2"]}, nil
}

var (
	employeeActor = user.Actor{UserID: "user-1", EmployeeID: "emp-1", Role: user.RoleEmployee}
	adminActor    = user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// memAttendance is a tiny in-memory table keyed by employee and date.
func memAttendance(loads *int32) *fakeAttendanceRepo {
	rows := map[string]map[string]attendance.Entry{}
	repo := &fakeAttendanceRepo{}
	repo.upsertFn = func(ctx context.Context, e attendance.Entry) (attendance.Entry, error) {
		if rows[e.EmployeeID] == nil {
			rows[e.EmployeeID] = map[string]attendance.Entry{}
		}
		rows[e.EmployeeID][e.Date.Format(validator.DateLayout)] = e
		return e, nil
	}
	repo.listByEmployeeAndMonthFn = func(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
		atomic.AddInt32(loads, 1)
		var out []attendance.Entry
		for _, e := range rows[employeeID] {
			if e.Date.Year() == month.Year() && e.Date.Month() == month.Month() {
				out = append(out, e)
			}
		}
		return out, nil
	}
	repo.listByMonthFn = func(ctx context.Context, month time.Time) ([]attendance.Entry, error) {
		var out []attendance.Entry
		for _, byDate := range rows {
			for _, e := range byDate {
				if e.Date.Year() == month.Year() && e.Date.Month() == month.Month() {
					out = append(out, e)
				}
			}
		}
		return out, nil
	}
	return repo
}

func newTestService(repo attendance.Repository) *AttendanceServiceImpl {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", EmployeeCode: "EMP001", FullName: "Jane Doe"},
		"emp-2": {ID: "emp-2", EmployeeCode: "EMP002", FullName: "John Roe"},
	}}
	svc := NewAttendanceService(repo, employees, 16, time.Minute).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func record(t *testing.T, svc *AttendanceServiceImpl, actor user.Actor, req attendance.RecordEntryRequest) {
	t.Helper()
	_, err := svc.RecordEntry(context.Background(), actor, req)
	require.NoError(t, err)
}

func TestRecordEntry_AndMonthReport(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", HoursWorked: floatPtr(8), TasksLogged: intPtr(3)})
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-04", Status: "present", HoursWorked: floatPtr(7.5)})
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-05", Status: "absent"})
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-06", Status: "on_leave"})

	report, err := svc.GetMonthReport(ctx, employeeActor, "", "2024-03")
	require.NoError(t, err)
	assert.Len(t, report.Entries, 4)
	assert.Equal(t, "2024-03", report.Summary.Month)
	assert.Equal(t, 2, report.Summary.PresentDays)
	assert.Equal(t, 1, report.Summary.LeaveDays)
	assert.Equal(t, 1, report.Summary.AbsentDays)
	assert.Equal(t, 15.5, report.Summary.TotalHours)
	assert.Equal(t, 3, report.Summary.TotalTasks)
	assert.Equal(t, 67, report.Summary.AttendanceRate)

	// Served from cache
	_, err = svc.GetMonthReport(ctx, employeeActor, "emp-1", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	// A write for the month invalidates it
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-05", Status: "present", HoursWorked: floatPtr(8)})
	report, err = svc.GetMonthReport(ctx, employeeActor, "", "2024-03")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	assert.Equal(t, 3, report.Summary.PresentDays)
	assert.Equal(t, 100, report.Summary.AttendanceRate)
}

func TestRecordEntry_Errors(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	_, err := svc.RecordEntry(ctx, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "absent", HoursWorked: floatPtr(2)})
	assert.ErrorIs(t, err, attendance.ErrInvalidEntry)

	_, err = svc.RecordEntry(ctx, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", HoursWorked: floatPtr(30)})
	assert.ErrorIs(t, err, attendance.ErrInvalidHours)

	_, err = svc.RecordEntry(ctx, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", EmployeeID: "emp-2"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.RecordEntry(ctx, adminActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", EmployeeID: "emp-9"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.RecordEntry(ctx, employeeActor, attendance.RecordEntryRequest{Date: "yesterday", Status: "late"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.ToMap(), 2)
}

func TestGetMonthReport_Access(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	_, err := svc.GetMonthReport(ctx, employeeActor, "emp-2", "2024-03")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.GetMonthReport(ctx, adminActor, "", "2024-03")
	assert.ErrorIs(t, err, user.ErrEmployeeIDRequired)

	_, err = svc.GetMonthReport(ctx, adminActor, "emp-2", "03-2024")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	report, err := svc.GetMonthReport(ctx, adminActor, "emp-2", "2024-03")
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Equal(t, 0, report.Summary.AttendanceRate)
}

func TestGetCompanySummary(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", HoursWorked: floatPtr(8)})
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-04", Status: "absent"})
	record(t, svc, adminActor, attendance.RecordEntryRequest{EmployeeID: "emp-2", Date: "2024-03-01", Status: "on_leave"})
	record(t, svc, adminActor, attendance.RecordEntryRequest{EmployeeID: "emp-2", Date: "2024-02-28", Status: "present"})

	_, err := svc.GetCompanySummary(ctx, employeeActor, "2024-03")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	resp, err := svc.GetCompanySummary(ctx, adminActor, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Employees)
	assert.Equal(t, 1, resp.Overall.PresentDays)
	assert.Equal(t, 1, resp.Overall.LeaveDays)
	assert.Equal(t, 1, resp.Overall.AbsentDays)
	assert.Equal(t, 50, resp.Overall.AttendanceRate)
	require.Len(t, resp.ByEmployee, 2)
	assert.Equal(t, "emp-1", resp.ByEmployee[0].EmployeeID)
	assert.Equal(t, 50, resp.ByEmployee[0].AttendanceRate)
	assert.Equal(t, "emp-2", resp.ByEmployee[1].EmployeeID)
	assert.Equal(t, 1, resp.ByEmployee[1].LeaveDays)
}

func TestExportMonth(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", HoursWorked: floatPtr(8), TasksLogged: intPtr(2)})
	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-02", Status: "on_leave"})

	buf, filename, err := svc.ExportMonth(ctx, employeeActor, "", "2024-03")
	require.NoError(t, err)
	assert.Equal(t, "attendance_EMP001_2024-03.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheet}, f.GetSheetList())

	title, err := f.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe (EMP001) - March 2024", title)

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)

	var dates []string
	for _, r := range rows[3:] {
		if len(r) == 0 {
			continue
		}
		if _, ok := validator.IsValidDate(r[0]); ok {
			dates = append(dates, r[0])
		}
	}
	assert.ElementsMatch(t, []string{"2024-03-01", "2024-03-02"}, dates)

	_, _, err = svc.ExportMonth(ctx, employeeActor, "emp-2", "2024-03")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestCleanSummaryCache(t *testing.T) {
	var loads int32
	svc := newTestService(memAttendance(&loads))
	ctx := context.Background()

	record(t, svc, employeeActor, attendance.RecordEntryRequest{Date: "2024-03-01", Status: "present", HoursWorked: floatPtr(8)})
	_, err := svc.GetMonthReport(ctx, employeeActor, "", "2024-03")
	require.NoError(t, err)

	// fresh entries survive
	removed, err := svc.CleanSummaryCache(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.CleanSummaryCache(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
