package employee_dashboard

import (
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

// EmployeeDashboardService defines the interface for the employee home page
type EmployeeDashboardService interface {
	// GetDashboard returns the quick stats of the actor's own employee record
	GetDashboard(ctx context.Context, actor user.Actor) (EmployeeDashboardResponse, error)
}
