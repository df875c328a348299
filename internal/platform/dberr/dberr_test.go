// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/dberr"
)

var (
	errMissing = apperr.NotFound("User")
	errTaken   = apperr.Conflict("User already exists")
)

func TestWrap(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	tests := []struct {
		name     string
		err      error
		wantErr  error
		wantCode string
	}{
		{"nil", nil, nil, ""},
		{"no_rows", pgx.ErrNoRows, errMissing, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), errMissing, apperr.CodeNotFound},
		{"unique_violation", uniqueViolation, errTaken, apperr.CodeConflict},
		{"connection_failure", errors.New("dial tcp: connection refused"), nil, apperr.CodeStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dberr.Wrap(tt.err, "users_find", errMissing, errTaken)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, got, tt.wantErr)
			}
			assert.True(t, apperr.HasCode(got, tt.wantCode))
		})
	}
}

func TestWrap_StoreUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")

	got := dberr.Wrap(cause, "users_delete", errMissing, errTaken)

	assert.ErrorIs(t, got, cause)
	assert.Contains(t, apperr.As(got).Cause.Error(), "users_delete")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}
