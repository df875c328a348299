// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/usergate/internal/platform/database/schema"
	"github.com/taibuivan/usergate/internal/platform/dberr"
)

// # Postgres Repository

// PostgresExecutor is the subset of [pgxpool.Pool] used by the repository.
type PostgresExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool PostgresExecutor
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewPostgresUserRepository(pool PostgresExecutor) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var usersTable = schema.Users

/*
FindByUsername retrieves a user record by its unique username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or store failures
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(usersTable.Columns(), ", "), usersTable.Table, usersTable.Username)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.Email,
		&user.Name,
		&user.Disabled,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_username_failed", ErrUserNotFound, nil)
	}

	return user, nil
}

/*
Create persists a new user record into the users table.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrUserExists on a unique violation, or store failures
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		usersTable.Table, strings.Join(usersTable.Columns(), ", "))

	_, err := repository.pool.Exec(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.Disabled,
		user.PasswordHash,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed", nil, ErrUserExists)
	}

	return nil
}

/*
UpdateFields sets the supplied profile columns on one row.

Parameters:
  - ctx: context.Context
  - username: string
  - changes: Changes

Returns:
  - error: ErrUserNotFound when no row matched, or store failures
*/
func (repository *PostgresUserRepository) UpdateFields(ctx context.Context, username string, changes Changes) error {
	assignments := make([]string, 0, 3)
	arguments := make([]any, 0, 3)

	if changes.Email != nil {
		arguments = append(arguments, *changes.Email)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", usersTable.Email, len(arguments)))
	}
	if changes.Name != nil {
		arguments = append(arguments, *changes.Name)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", usersTable.Name, len(arguments)))
	}
	assignments = append(assignments, usersTable.UpdatedAt+" = now()")
	arguments = append(arguments, username)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		usersTable.Table, strings.Join(assignments, ", "), usersTable.Username, len(arguments))

	tag, err := repository.pool.Exec(ctx, query, arguments...)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_failed", nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

/*
Delete removes one row by username.

Returns:
  - error: ErrUserNotFound when no row matched, or store failures
*/
func (repository *PostgresUserRepository) Delete(ctx context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, usersTable.Table, usersTable.Username)

	tag, err := repository.pool.Exec(ctx, query, username)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_delete_failed", nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Ping checks that the pool can reach the database.
func (repository *PostgresUserRepository) Ping(ctx context.Context) error {
	if err := repository.pool.Ping(ctx); err != nil {
		return dberr.Wrap(err, "postgres_user_repo_ping_failed", nil, nil)
	}
	return nil
}
