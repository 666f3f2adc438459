package timesheet

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/service/accounting"
)

type TimesheetServiceImpl struct {
	timesheet.Repository
}

func NewTimesheetService(repo timesheet.Repository) timesheet.TimesheetService {
	return &TimesheetServiceImpl{Repository: repo}
}

// LogTask implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) LogTask(ctx context.Context, actor user.Actor, req timesheet.LogTaskRequest) (timesheet.TaskResponse, error) {
	if actor.EmployeeID == "" {
		return timesheet.TaskResponse{}, user.ErrEmployeeIDRequired
	}
	if err := req.Validate(); err != nil {
		return timesheet.TaskResponse{}, err
	}

	hours, err := accounting.Duration(req.StartTime, req.EndTime)
	if err != nil {
		return timesheet.TaskResponse{}, err
	}

	created, err := s.Repository.Create(ctx, timesheet.Task{
		EmployeeID:    actor.EmployeeID,
		Date:          req.Day,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: math.Round(hours*100) / 100,
	})
	if err != nil {
		return timesheet.TaskResponse{}, err
	}

	slog.Info("Timesheet task logged", "task_id", created.ID, "employee_id", created.EmployeeID, "hours", created.DurationHours)
	return timesheet.NewTaskResponse(created), nil
}

// GetDay implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetDay(ctx context.Context, actor user.Actor, employeeID string, date string) (timesheet.DayResponse, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	d, ok := validator.IsValidDate(date)
	if !ok {
		return timesheet.DayResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	tasks, err := s.Repository.ListByEmployeeAndRange(ctx, employeeID, d, d)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	total := timesheet.DayTotal{Date: d}
	if totals := accounting.DailyTotals(tasks); len(totals) > 0 {
		total = totals[0]
	}

	resp := timesheet.DayResponse{
		DayTotalResponse: timesheet.NewDayTotalResponse(total),
		Tasks:            make([]timesheet.TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, timesheet.NewTaskResponse(t))
	}
	return resp, nil
}

// GetRange implements timesheet.TimesheetService. Days without tasks are omitted.
func (s *TimesheetServiceImpl) GetRange(ctx context.Context, actor user.Actor, employeeID string, from, to string) (timesheet.RangeResponse, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return timesheet.RangeResponse{}, err
	}
	start, end, err := timesheet.ParseRange(from, to)
	if err != nil {
		return timesheet.RangeResponse{}, err
	}

	tasks, err := s.Repository.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return timesheet.RangeResponse{}, err
	}

	totals := accounting.DailyTotals(tasks)
	resp := timesheet.RangeResponse{
		From: start.Format(validator.DateLayout),
		To:   end.Format(validator.DateLayout),
		Days: make([]timesheet.DayTotalResponse, 0, len(totals)),
	}
	var minutes int64
	for _, d := range totals {
		minutes += d.TotalMinutes
		resp.Days = append(resp.Days, timesheet.NewDayTotalResponse(d))
	}
	resp.TotalHours = math.Round(float64(minutes)/60*100) / 100
	return resp, nil
}

// DeleteTask implements timesheet.TimesheetService. Employees may only delete their own tasks.
func (s *TimesheetServiceImpl) DeleteTask(ctx context.Context, actor user.Actor, taskID string) error {
	task, err := s.Repository.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !actor.CanAccessEmployee(task.EmployeeID) {
		return timesheet.ErrTaskNotFound
	}
	if err := s.Repository.Delete(ctx, taskID); err != nil {
		return err
	}

	slog.Info("Timesheet task deleted", "task_id", taskID, "employee_id", task.EmployeeID, "deleted_by", actor.UserID)
	return nil
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
