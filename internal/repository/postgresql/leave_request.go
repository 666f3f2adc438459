package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.category, lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.status, lr.submitted_at, lr.decided_by, lr.decided_at, lr.decision_reason,
	lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.Category,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Days,
		&lr.Reason,
		&lr.Status,
		&lr.SubmittedAt,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.DecisionReason,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.Request{}, fmt.Errorf("generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests AS lr (
			id, employee_id, category, start_date, end_date, days,
			reason, status, submitted_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, NOW(), NOW(), NOW()
		) RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id.String(), request.EmployeeID, request.Category, request.StartDate, request.EndDate, request.Days,
		request.Reason, request.Status,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("insert leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return r.get(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests lr WHERE lr.id = $1`, id)
}

// GetByIDForUpdate implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return r.get(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests lr WHERE lr.id = $1 FOR UPDATE`, id)
}

func (r *leaveRequestRepositoryImpl) get(ctx context.Context, query string, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, err
	}
	return lr, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, window *leave.DateRange) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.employee_id = $1`
	args := []interface{}{employeeID}
	if window != nil {
		query += ` AND lr.start_date <= $3 AND lr.end_date >= $2`
		args = append(args, window.From, window.To)
	}
	query += ` ORDER BY lr.submitted_at DESC, lr.id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// ListPending implements leave.RequestRepository. Oldest submissions come first.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests lr
		WHERE lr.status = $1
		ORDER BY lr.submitted_at ASC, lr.id ASC
	`, leave.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// UpdateDecision implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, decision_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`
	commandTag, err := q.Exec(ctx, query,
		request.ID, request.Status, request.DecidedBy, request.DecidedAt, request.DecisionReason,
		leave.RequestStatusPending,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrAlreadyDecided
	}
	return nil
}
