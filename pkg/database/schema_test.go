package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
)

func TestCreateSchema_UsernameUniquenessIsCaseInsensitive(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := NewFromDB(sqlDB, logger.New("error"))

	for _, table := range []string{
		"users", "appointments", "clinical_notes", "visit_notes",
		"billing_entries", "staff_records",
	} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	// The users index must be the unique LOWER(username) index so "Bob" and
	// "bob" cannot coexist as separate accounts.
	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users \(LOWER\(username\)\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for range []int{0, 1, 2, 3} {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, db.CreateSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedUsers_IdempotentOnCaseInsensitiveConflict(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := NewFromDB(sqlDB, logger.New("error"))

	mock.ExpectExec(`INSERT INTO users(.+)ON CONFLICT \(LOWER\(username\)\) DO NOTHING`).
		WithArgs("patient", "hash", "patient").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = db.SeedUsers(context.Background(), []SeedUser{
		{Username: "patient", PasswordHash: "hash", Role: "patient"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
