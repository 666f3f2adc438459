package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByCodeOrEmail(ctx context.Context, employeeCode, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	List(ctx context.Context) ([]Employee, error)
}
