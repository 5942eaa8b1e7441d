package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &Postgres{connections: sqlxDB}, mock
}

func TestIsAdmin(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM admins WHERE telegram_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	isAdmin, err := postgres.IsAdmin(context.Background(), "u1")
	assert.NoError(t, err)
	assert.True(t, isAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAdmin_NoRow(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM admins WHERE telegram_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	isAdmin, err := postgres.IsAdmin(context.Background(), "u1")
	assert.NoError(t, err)
	assert.False(t, isAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAdmin(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectExec("INSERT INTO admins").
		WithArgs("u1", "Alice").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := postgres.InsertAdmin(context.Background(), "u1", "Alice")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdminByName(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectExec("DELETE FROM admins WHERE name = \\$1").
		WithArgs("Alice").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := postgres.DeleteAdminByName(context.Background(), "Alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdminByName_NotFound(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectExec("DELETE FROM admins WHERE name = \\$1").
		WithArgs("Nobody").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := postgres.DeleteAdminByName(context.Background(), "Nobody")
	assert.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAdmins(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT name FROM admins ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice").AddRow("Bob"))

	names, err := postgres.ListAdmins(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAuthorized(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations WHERE chat_id = \\$1 AND command = \\$2").
		WithArgs("chat1", "poll").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := postgres.IsAuthorized(context.Background(), "chat1", "poll")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAuthorized_StoreError(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations").
		WithArgs("chat1", "poll").
		WillReturnError(errors.New("connection reset"))

	ok, err := postgres.IsAuthorized(context.Background(), "chat1", "poll")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorize_InsertsWhenMissing(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations WHERE chat_id = \\$1 AND command = \\$2").
		WithArgs("chat1", "poll").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO authorizations").
		WithArgs("poll", "chat1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := postgres.Authorize(context.Background(), "chat1", "poll")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorize_Idempotent(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations WHERE chat_id = \\$1 AND command = \\$2").
		WithArgs("chat1", "poll").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	err := postgres.Authorize(context.Background(), "chat1", "poll")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnauthorize_DeletesWhenPresent(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations WHERE chat_id = \\$1 AND command = \\$2").
		WithArgs("chat1", "poll").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("DELETE FROM authorizations").
		WithArgs("poll", "chat1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := postgres.Unauthorize(context.Background(), "chat1", "poll")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnauthorize_Idempotent(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations WHERE chat_id = \\$1 AND command = \\$2").
		WithArgs("chat1", "poll").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	err := postgres.Unauthorize(context.Background(), "chat1", "poll")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorize_RollsBackOnError(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM authorizations").
		WithArgs("chat1", "poll").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := postgres.Authorize(context.Background(), "chat1", "poll")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuthorizations(t *testing.T) {
	postgres, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT command FROM authorizations WHERE chat_id = \\$1 ORDER BY command ASC").
		WithArgs("chat1").
		WillReturnRows(sqlmock.NewRows([]string{"command"}).AddRow("bureau").AddRow("poll"))

	commands, err := postgres.ListAuthorizations(context.Background(), "chat1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"bureau", "poll"}, commands)
	assert.NoError(t, mock.ExpectationsWereMet())
}
