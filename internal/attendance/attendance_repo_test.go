package attendance_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"dayflow/internal/attendance"
	"dayflow/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAttendanceRepository_MarkCheckOut(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)

	t.Run("open record is closed", func(t *testing.T) {
		db, mock := dbtest.New(t)
		repo := attendance.NewRepository(db)
		mock.ExpectExec(`UPDATE "attendance" SET .* WHERE id = \$\d+ AND check_out IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkCheckOut(ctx, "a-1", at, 480, nil)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already closed", func(t *testing.T) {
		db, mock := dbtest.New(t)
		repo := attendance.NewRepository(db)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "attendance" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkCheckOut(ctx, "a-1", at, 480, nil)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAttendanceRepository_ProfileExists(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := attendance.NewRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "profiles" WHERE user_id = $1`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ProfileExists(context.Background(), "u-1")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_List(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := attendance.NewRepository(db)
	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "status", "full_name"}).
		AddRow("a-1", "u-1", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "late", "Jane Doe")
	mock.ExpectQuery(`SELECT a\.\*, COALESCE\(p\.full_name, ''\) AS full_name FROM attendance AS a LEFT JOIN profiles p .* WHERE a\.user_id = \$1 AND a\.date >= \$2 AND a\.date < \$3`).
		WithArgs("u-1", "2024-03-01", "2024-04-01").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), attendance.ListFilter{
		UserID: "u-1",
		From:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].FullName)
	assert.Equal(t, attendance.StatusLate, got[0].Status)
}
