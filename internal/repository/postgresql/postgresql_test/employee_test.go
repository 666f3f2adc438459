package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_ListOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	second := createTestEmployee(t, db, "EMP031")
	first := createTestEmployee(t, db, "EMP030")

	employees, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, first.ID, employees[0].ID)
	assert.Equal(t, second.ID, employees[1].ID)
}

func TestEmployeeRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	_, err := repo.GetByID(ctx, "0190a6f0-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	name := "Nobody"
	err = repo.UpdateProfile(ctx, "0190a6f0-0000-7000-8000-000000000000", employee.UpdateProfileRequest{FullName: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	exists, err := repo.ExistsByCodeOrEmail(ctx, "EMP999", "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
