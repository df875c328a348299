// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/users/auth"
)

const (
	selectUserSQL = `SELECT username, email, name, disabled, hashed_password FROM users WHERE username = $1`
	insertUserSQL = `INSERT INTO users (username, email, name, disabled, hashed_password) VALUES ($1, $2, $3, $4, $5)`
	deleteUserSQL = `DELETE FROM users WHERE username = $1`
)

func newPostgresRepository(t *testing.T) (*auth.PostgresUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return auth.NewPostgresUserRepository(mock), mock
}

func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	repository, mock := newPostgresRepository(t)

	email := "test@gmail.com"
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("test").
		WillReturnRows(pgxmock.NewRows([]string{"username", "email", "name", "disabled", "hashed_password"}).
			AddRow("test", &email, (*string)(nil), false, "$2a$04$hash"))

	user, err := repository.FindByUsername(context.Background(), "test")
	require.NoError(t, err)

	assert.Equal(t, "test", user.Username)
	assert.Equal(t, "test@gmail.com", *user.Email)
	assert.Nil(t, user.Name)
	assert.Equal(t, "$2a$04$hash", user.PasswordHash)
}

func TestPostgresUserRepository_FindByUsername_Missing(t *testing.T) {
	repository, mock := newPostgresRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestPostgresUserRepository_Create(t *testing.T) {
	repository, mock := newPostgresRepository(t)
	user := &auth.User{Username: "test", PasswordHash: "$2a$04$hash"}

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("test", (*string)(nil), (*string)(nil), false, "$2a$04$hash").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repository.Create(context.Background(), user))

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("test", (*string)(nil), (*string)(nil), false, "$2a$04$hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	assert.ErrorIs(t, repository.Create(context.Background(), user), auth.ErrUserExists)
}

func TestPostgresUserRepository_UpdateFields(t *testing.T) {
	repository, mock := newPostgresRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET name = $1, updated_at = now() WHERE username = $2`)).
		WithArgs("new", "a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repository.UpdateFields(context.Background(), "a", auth.Changes{Name: ptr("new")}))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET email = $1, name = $2, updated_at = now() WHERE username = $3`)).
		WithArgs("x@y.com", "new", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repository.UpdateFields(context.Background(), "ghost", auth.Changes{Email: ptr("x@y.com"), Name: ptr("new")})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestPostgresUserRepository_Delete(t *testing.T) {
	repository, mock := newPostgresRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
		WithArgs("a").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repository.Delete(context.Background(), "a"))

	mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
		WithArgs("a").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repository.Delete(context.Background(), "a"), auth.ErrUserNotFound)
}

func TestPostgresUserRepository_StoreUnavailable(t *testing.T) {
	repository, mock := newPostgresRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
		WithArgs("a").
		WillReturnError(errors.New("conn closed"))
	err := repository.Delete(context.Background(), "a")
	assert.True(t, apperr.HasCode(err, apperr.CodeStoreUnavailable))

	mock.ExpectPing().WillReturnError(errors.New("conn closed"))
	assert.True(t, apperr.HasCode(repository.Ping(context.Background()), apperr.CodeStoreUnavailable))
}
