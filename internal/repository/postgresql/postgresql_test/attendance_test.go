package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_UpsertReplacesDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createTestEmployee(t, db, "EMP020")

	hours := 7.5
	tasks := 3
	_, err := repo.Upsert(ctx, attendance.Entry{EmployeeID: emp.ID, Date: date("2024-03-04"), Status: attendance.StatusAbsent})
	require.NoError(t, err)
	saved, err := repo.Upsert(ctx, attendance.Entry{EmployeeID: emp.ID, Date: date("2024-03-04"), Status: attendance.StatusPresent, HoursWorked: &hours, TasksLogged: &tasks})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, saved.Status)

	_, err = repo.Upsert(ctx, attendance.Entry{EmployeeID: emp.ID, Date: date("2024-04-01"), Status: attendance.StatusOnLeave})
	require.NoError(t, err)

	march, err := repo.ListByEmployeeAndMonth(ctx, emp.ID, date("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, march, 1)
	require.NotNil(t, march[0].HoursWorked)
	assert.Equal(t, 7.5, *march[0].HoursWorked)

	all, err := repo.ListByMonth(ctx, date("2024-04-01"))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTimesheetRepository_RangeAndDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewTimesheetRepository(db)
	emp := createTestEmployee(t, db, "EMP021")

	created, err := repo.Create(ctx, timesheet.Task{
		EmployeeID: emp.ID, Date: date("2024-03-04"), Title: "Code review",
		StartTime: "13:00", EndTime: "14:30", DurationHours: 1.5,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, timesheet.Task{
		EmployeeID: emp.ID, Date: date("2024-03-04"), Title: "Standup",
		StartTime: "09:00", EndTime: "09:15", DurationHours: 0.25,
	})
	require.NoError(t, err)

	tasks, err := repo.ListByEmployeeAndRange(ctx, emp.ID, date("2024-03-04"), date("2024-03-04"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Standup", tasks[0].Title)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, timesheet.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), timesheet.ErrTaskNotFound)
}
