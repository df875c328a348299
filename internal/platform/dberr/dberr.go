// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/usergate/internal/platform/apperr"
)

// Wrap inspects a PostgreSQL error and classifies it.
//
// No-row results become notFound, unique violations become conflict, and
// anything else is a [apperr.StoreUnavailable] whose cause names the action.
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string, notFound, conflict error) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	// 2. Unique constraint mapping
	if conflict != nil && IsUniqueViolation(err) {
		return conflict
	}

	// 3. Everything else is a store failure for this request
	return apperr.StoreUnavailable(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
