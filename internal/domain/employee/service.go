package employee

import (
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

type EmployeeService interface {
	// Create registers an employee with a login account and an opening leave balance (admin)
	Create(ctx context.Context, actor user.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (EmployeeResponse, error)
	List(ctx context.Context, actor user.Actor) ([]EmployeeResponse, error)
	UpdateProfile(ctx context.Context, actor user.Actor, req UpdateProfileRequest) (EmployeeResponse, error)
}
