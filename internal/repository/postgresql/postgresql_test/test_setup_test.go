package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// setupTestDB connects to TEST_DATABASE_URL, applies migrations and empties every table.
// Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		require.NoError(t, database.RunMigrations(dsn))

		db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{})
		require.NoError(t, err)
		testDB = db
	}

	truncateAllTables(t)
	return testDB
}

func truncateAllTables(t *testing.T) {
	ctx := context.Background()
	tables := []string{
		"timesheet_tasks",
		"attendance_entries",
		"leave_requests",
		"leave_balances",
		"users",
		"employees",
	}

	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}

func createTestEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()

	repo := postgresql.NewEmployeeRepository(db)
	e, err := repo.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Employee " + code,
		Email:        code + "@example.com",
		Department:   "Engineering",
		JoinDate:     time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return e
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
