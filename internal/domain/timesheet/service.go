package timesheet

import (
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

type TimesheetService interface {
	LogTask(ctx context.Context, actor user.Actor, req LogTaskRequest) (TaskResponse, error)
	GetDay(ctx context.Context, actor user.Actor, employeeID string, date string) (DayResponse, error)
	GetRange(ctx context.Context, actor user.Actor, employeeID string, from, to string) (RangeResponse, error)
	DeleteTask(ctx context.Context, actor user.Actor, taskID string) error
}
