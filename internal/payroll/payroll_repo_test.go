package payroll_test

import (
	"context"
	"testing"

	"dayflow/internal/payroll"
	"dayflow/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPayrollRepository_ListSalaries(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := payroll.NewRepository(db)
	rows := sqlmock.NewRows([]string{"user_id", "full_name", "email", "department", "position", "salary", "status", "join_date"}).
		AddRow("u-1", "Alice Smith", "alice@dayflow.io", "Engineering", nil, int64(9500000), "active", nil)
	mock.ExpectQuery(`SELECT user_id, full_name, email, department, position, salary, status, join_date FROM "profiles" WHERE department = \$1 ORDER BY full_name ASC`).
		WithArgs("Engineering").
		WillReturnRows(rows)

	got, err := repo.ListSalaries(context.Background(), payroll.ListFilter{Department: "Engineering"})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(9500000), *got[0].Salary)
	assert.Nil(t, got[0].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}
