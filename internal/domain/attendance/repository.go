package attendance

import (
	"context"
	"time"
)

// Repository defines data access methods for attendance entries.
type Repository interface {
	// Upsert creates or replaces the entry for (employee, date).
	Upsert(ctx context.Context, entry Entry) (Entry, error)

	// ListByEmployeeAndMonth returns the employee's entries for the month containing month, oldest first.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]Entry, error)

	// ListByMonth returns every employee's entries for the month containing month.
	ListByMonth(ctx context.Context, month time.Time) ([]Entry, error)
}
