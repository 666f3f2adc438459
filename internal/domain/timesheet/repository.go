package timesheet

import (
	"context"
	"time"
)

// Repository - interface for timesheet_tasks table
type Repository interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	// ListByEmployeeAndRange returns tasks dated within [from, to], ordered by date then start time.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Task, error)
	Delete(ctx context.Context, id string) error
}
