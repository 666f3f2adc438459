package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	balanceRepo  leave.BalanceRepository

	// openingBalance seeds the leave balance of every new employee
	openingBalance leave.Balance
	now            func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	balanceRepo leave.BalanceRepository,
	openingBalance leave.Balance,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		userRepo:       userRepo,
		balanceRepo:    balanceRepo,
		openingBalance: openingBalance,
		now:            time.Now,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, actor user.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return employee.EmployeeResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.employeeRepo.ExistsByCodeOrEmail(ctx, req.EmployeeCode, email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee uniqueness: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	emailTaken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if emailTaken {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joinDate := s.now().UTC().Truncate(24 * time.Hour)
	if req.Joined != nil {
		joinDate = *req.Joined
	}

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			EmployeeCode: strings.TrimSpace(req.EmployeeCode),
			FullName:     strings.TrimSpace(req.FullName),
			Email:        email,
			PhoneNumber:  req.PhoneNumber,
			Department:   strings.TrimSpace(req.Department),
			JoinDate:     joinDate,
		})
		if err != nil {
			return err
		}

		if _, err := s.userRepo.Create(txCtx, user.User{
			EmployeeID:   &created.ID,
			Email:        email,
			PasswordHash: string(hash),
			Role:         user.Role(req.Role),
		}); err != nil {
			return err
		}

		opening := s.openingBalance
		opening.EmployeeID = created.ID
		if _, err := s.balanceRepo.Create(txCtx, opening); err != nil {
			return fmt.Errorf("failed to create opening leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode, "created_by", actor.UserID)
	return employee.NewEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (employee.EmployeeResponse, error) {
	if !actor.CanAccessEmployee(id) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor user.Actor) ([]employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// UpdateProfile implements employee.EmployeeService. It always targets the actor's own record.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, actor user.Actor, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if actor.EmployeeID == "" {
		return employee.EmployeeResponse{}, user.ErrEmployeeIDRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}

	if err := s.employeeRepo.UpdateProfile(ctx, actor.EmployeeID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}
