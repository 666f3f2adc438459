package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, email, phone_number, department, address,
	emergency_contact, join_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Email,
		&e.PhoneNumber,
		&e.Department,
		&e.Address,
		&e.EmergencyContact,
		&e.JoinDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, employee_code, full_name, email, phone_number, department,
			address, emergency_contact, join_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email,
		newEmployee.PhoneNumber, newEmployee.Department, newEmployee.Address,
		newEmployee.EmergencyContact, newEmployee.JoinDate,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ExistsByCodeOrEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByCodeOrEmail(ctx context.Context, employeeCode, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM employees WHERE employee_code = $1 OR LOWER(email) = LOWER($2)
		)`, employeeCode, email).Scan(&exists)
	return exists, err
}

// UpdateProfile implements employee.EmployeeRepository. Nil fields keep their stored value.
func (r *employeeRepositoryImpl) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name         = COALESCE($2, full_name),
			phone_number      = COALESCE($3, phone_number),
			address           = COALESCE($4, address),
			emergency_contact = COALESCE($5, emergency_contact),
			updated_at        = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id, req.FullName, req.PhoneNumber, req.Address, req.EmergencyContact)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY full_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
