package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/service/accounting"
	"golang.org/x/sync/errgroup"
)

// monthSnapshot is what the summary cache holds for one employee and month.
type monthSnapshot struct {
	Entries []attendance.Entry
	Summary attendance.Summary
}

type AttendanceServiceImpl struct {
	attendance.Repository
	employee.EmployeeRepository
	summaries *cache.LRUCache[monthSnapshot]
	now       func() time.Time
}

// NewAttendanceService keeps up to cacheSize employee months in memory for cacheTTL.
func NewAttendanceService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.EmployeeRepository,
	cacheSize int,
	cacheTTL time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		Repository:         attendanceRepo,
		EmployeeRepository: employeeRepo,
		summaries:          cache.NewLRUCache[monthSnapshot](cacheSize, cacheTTL),
		now:                time.Now,
	}
}

func summaryKey(employeeID string, month time.Time) string {
	return employeeID + ":" + month.Format(validator.MonthLayout)
}

// RecordEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEntry(ctx context.Context, actor user.Actor, req attendance.RecordEntryRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}

	employeeID, err := resolveEmployee(actor, req.EmployeeID)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	if employeeID != actor.EmployeeID {
		if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
			return attendance.EntryResponse{}, err
		}
	}

	entry, err := accounting.ValidateEntry(attendance.Entry{
		EmployeeID:  employeeID,
		Date:        req.Day,
		Status:      attendance.Status(req.Status),
		HoursWorked: req.HoursWorked,
		TasksLogged: req.TasksLogged,
	})
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	saved, err := a.Repository.Upsert(ctx, entry)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	a.summaries.Delete(summaryKey(employeeID, saved.Date))

	slog.Info("Attendance recorded", "employee_id", employeeID, "date", saved.Date.Format(validator.DateLayout), "status", saved.Status)
	return attendance.NewEntryResponse(saved), nil
}

// GetMonthReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthReport(ctx context.Context, actor user.Actor, employeeID string, month string) (attendance.MonthReportResponse, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return attendance.MonthReportResponse{}, err
	}
	m, err := a.parseMonth(month)
	if err != nil {
		return attendance.MonthReportResponse{}, err
	}

	snapshot, err := a.loadMonth(ctx, employeeID, m)
	if err != nil {
		return attendance.MonthReportResponse{}, err
	}

	resp := attendance.MonthReportResponse{
		Summary: attendance.NewSummaryResponse(employeeID, m, snapshot.Summary),
		Entries: make([]attendance.EntryResponse, 0, len(snapshot.Entries)),
	}
	for _, e := range snapshot.Entries {
		resp.Entries = append(resp.Entries, attendance.NewEntryResponse(e))
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) loadMonth(ctx context.Context, employeeID string, month time.Time) (monthSnapshot, error) {
	return a.summaries.GetOrLoad(ctx, summaryKey(employeeID, month), func(ctx context.Context) (monthSnapshot, error) {
		entries, err := a.Repository.ListByEmployeeAndMonth(ctx, employeeID, month)
		if err != nil {
			return monthSnapshot{}, fmt.Errorf("failed to load attendance: %w", err)
		}
		return monthSnapshot{Entries: entries, Summary: accounting.Summarize(entries)}, nil
	})
}

// CleanSummaryCache implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CleanSummaryCache(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return a.summaries.CleanExpired(), nil
}

// GetCompanySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetCompanySummary(ctx context.Context, actor user.Actor, month string) (attendance.CompanySummaryResponse, error) {
	if !actor.IsAdmin() {
		return attendance.CompanySummaryResponse{}, user.ErrAdminPrivilegeRequired
	}
	m, err := a.parseMonth(month)
	if err != nil {
		return attendance.CompanySummaryResponse{}, err
	}

	var (
		employees []employee.Employee
		entries   []attendance.Entry
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = a.EmployeeRepository.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = a.Repository.ListByMonth(gCtx, m)
		return err
	})
	if err := g.Wait(); err != nil {
		return attendance.CompanySummaryResponse{}, fmt.Errorf("failed to load company attendance: %w", err)
	}

	overall, err := accounting.SummarizeParallel(ctx, entries, runtime.GOMAXPROCS(0))
	if err != nil {
		return attendance.CompanySummaryResponse{}, err
	}

	byEmployee := make(map[string][]attendance.Entry)
	for _, e := range entries {
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}
	ids := make([]string, 0, len(employees))
	seen := make(map[string]bool, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
		seen[e.ID] = true
	}
	var orphans []string
	for id := range byEmployee {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	ids = append(ids, orphans...)

	resp := attendance.CompanySummaryResponse{
		Month:      m.Format(validator.MonthLayout),
		Employees:  len(ids),
		Overall:    attendance.NewSummaryResponse("", m, overall),
		ByEmployee: make([]attendance.SummaryResponse, 0, len(ids)),
	}
	for _, id := range ids {
		resp.ByEmployee = append(resp.ByEmployee, attendance.NewSummaryResponse(id, m, accounting.Summarize(byEmployee[id])))
	}
	return resp, nil
}

// ExportMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMonth(ctx context.Context, actor user.Actor, employeeID string, month string) (*bytes.Buffer, string, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return nil, "", err
	}
	m, err := a.parseMonth(month)
	if err != nil {
		return nil, "", err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, "", err
	}
	snapshot, err := a.loadMonth(ctx, employeeID, m)
	if err != nil {
		return nil, "", err
	}

	buf, err := renderMonthWorkbook(emp, m, snapshot)
	if err != nil {
		slog.Error("Failed to render attendance export", "employee_id", employeeID, "month", m.Format(validator.MonthLayout), "error", err)
		return nil, "", errors.Join(attendance.ErrExportFailed, err)
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", emp.EmployeeCode, m.Format(validator.MonthLayout))
	return buf, filename, nil
}

// parseMonth accepts "YYYY-MM"; an empty value means the current month.
func (a *AttendanceServiceImpl) parseMonth(month string) (time.Time, error) {
	if month == "" {
		now := a.now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	m, ok := validator.IsValidMonth(month)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return m, nil
}

func resolveEmployee(actor user.Actor, employeeID string) (string, error) {
	if employeeID == "" {
		if actor.EmployeeID == "" {
			return "", user.ErrEmployeeIDRequired
		}
		return actor.EmployeeID, nil
	}
	if !actor.CanAccessEmployee(employeeID) {
		return "", user.ErrInsufficientPermissions
	}
	return employeeID, nil
}
