// Package dbtest opens a GORM handle on top of sqlmock for repository and
// service tests.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return db, mock
}

// ExpectTx registers a BEGIN and its closing COMMIT or ROLLBACK. Statements in
// between must be registered by the caller before invoking the code under test.
func ExpectTx(mock sqlmock.Sqlmock, commit bool, inner func()) {
	mock.ExpectBegin()
	if inner != nil {
		inner()
	}
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}
