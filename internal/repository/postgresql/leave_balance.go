package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const balanceColumns = `employee_id, casual, sick, earned, version, updated_at`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(&b.EmployeeID, &b.Casual, &b.Sick, &b.Earned, &b.Version, &b.UpdatedAt)
	return b, err
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, casual, sick, earned, version, updated_at)
		VALUES ($1, $2, $3, $4, 1, NOW())
		RETURNING ` + balanceColumns

	created, err := scanBalance(q.QueryRow(ctx, query, balance.EmployeeID, balance.Casual, balance.Sick, balance.Earned))
	if err != nil {
		if isUniqueViolation(err) {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, fmt.Errorf("insert leave balance: %w", err)
	}
	return created, nil
}

// GetByEmployeeID implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (leave.Balance, error) {
	return r.get(ctx, `SELECT `+balanceColumns+` FROM leave_balances WHERE employee_id = $1`, employeeID)
}

// GetByEmployeeIDForUpdate implements leave.BalanceRepository. It must run inside a
// transaction; the row stays locked until that transaction ends.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (leave.Balance, error) {
	return r.get(ctx, `SELECT `+balanceColumns+` FROM leave_balances WHERE employee_id = $1 FOR UPDATE`, employeeID)
}

func (r *leaveBalanceRepositoryImpl) get(ctx context.Context, query string, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// Update implements leave.BalanceRepository. The write only lands when the stored
// version still equals balance.Version; otherwise leave.ErrConcurrentUpdate is returned.
func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET casual = $2, sick = $3, earned = $4, version = version + 1, updated_at = NOW()
		WHERE employee_id = $1 AND version = $5
		RETURNING ` + balanceColumns

	updated, err := scanBalance(q.QueryRow(ctx, query,
		balance.EmployeeID, balance.Casual, balance.Sick, balance.Earned, balance.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrConcurrentUpdate
		}
		return leave.Balance{}, fmt.Errorf("update leave balance: %w", err)
	}
	return updated, nil
}
