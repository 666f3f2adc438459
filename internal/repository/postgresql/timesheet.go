package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepositoryImpl{db: db}
}

const taskColumns = `id, employee_id, date, title, description, start_time, end_time, duration_hours, created_at, updated_at`

func scanTask(row pgx.Row) (timesheet.Task, error) {
	var t timesheet.Task
	err := row.Scan(
		&t.ID,
		&t.EmployeeID,
		&t.Date,
		&t.Title,
		&t.Description,
		&t.StartTime,
		&t.EndTime,
		&t.DurationHours,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create implements timesheet.Repository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, task timesheet.Task) (timesheet.Task, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	query := `
		INSERT INTO timesheet_tasks (
			id, employee_id, date, title, description, start_time, end_time, duration_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query,
		id.String(), task.EmployeeID, task.Date, task.Title, task.Description,
		task.StartTime, task.EndTime, task.DurationHours,
	))
	if err != nil {
		return timesheet.Task{}, fmt.Errorf("insert timesheet task: %w", err)
	}
	return created, nil
}

// GetByID implements timesheet.Repository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM timesheet_tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Task{}, timesheet.ErrTaskNotFound
		}
		return timesheet.Task{}, err
	}
	return t, nil
}

// ListByEmployeeAndRange implements timesheet.Repository.
func (r *timesheetRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+taskColumns+`
		FROM timesheet_tasks
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, start_time ASC, id ASC
	`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []timesheet.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete implements timesheet.Repository.
func (r *timesheetRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM timesheet_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timesheet.ErrTaskNotFound
	}
	return nil
}
