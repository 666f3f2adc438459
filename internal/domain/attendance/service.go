package attendance

import (
	"bytes"
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordEntry creates or replaces a day's entry for the actor (or any employee, for admins)
	RecordEntry(ctx context.Context, actor user.Actor, req RecordEntryRequest) (EntryResponse, error)

	// GetMonthReport returns the month's entries and their summary
	GetMonthReport(ctx context.Context, actor user.Actor, employeeID string, month string) (MonthReportResponse, error)

	// ExportMonth renders the month report as an xlsx workbook
	ExportMonth(ctx context.Context, actor user.Actor, employeeID string, month string) (*bytes.Buffer, string, error)

	// GetCompanySummary aggregates every employee's month (admin)
	GetCompanySummary(ctx context.Context, actor user.Actor, month string) (CompanySummaryResponse, error)

	// CleanSummaryCache drops expired month summaries and returns how many were removed
	CleanSummaryCache(ctx context.Context) (int, error)
}
