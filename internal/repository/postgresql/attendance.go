package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `employee_id, date, status, hours_worked, tasks_logged, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Entry, error) {
	var e attendance.Entry
	err := row.Scan(&e.EmployeeID, &e.Date, &e.Status, &e.HoursWorked, &e.TasksLogged, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func monthBounds(month time.Time) (time.Time, time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

// Upsert implements attendance.Repository.
func (a *attendanceRepository) Upsert(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_entries (employee_id, date, status, hours_worked, tasks_logged, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status       = EXCLUDED.status,
			hours_worked = EXCLUDED.hours_worked,
			tasks_logged = EXCLUDED.tasks_logged,
			updated_at   = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Date, entry.Status, entry.HoursWorked, entry.TasksLogged,
	))
	if err != nil {
		return attendance.Entry{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// ListByEmployeeAndMonth implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)
	from, to := monthBounds(month)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_entries
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month time.Time) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)
	from, to := monthBounds(month)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_entries
		WHERE date >= $1 AND date < $2
		ORDER BY employee_id ASC, date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Entry, error) {
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		e, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
