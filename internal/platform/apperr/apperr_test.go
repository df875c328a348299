// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/usergate/internal/platform/apperr"
)

func TestConstructors_StatusAndChallenge(t *testing.T) {
	tests := []struct {
		name      string
		err       *apperr.AppError
		status    int
		code      string
		challenge string
	}{
		{"unauthenticated", apperr.Unauthenticated("Not authenticated"), http.StatusUnauthorized, apperr.CodeUnauthenticated, "Bearer"},
		{"invalid_credentials", apperr.InvalidCredentials("Incorrect username or password"), http.StatusUnauthorized, apperr.CodeInvalidCredentials, "Bearer"},
		{"inactive_account", apperr.InactiveAccount("Inactive user"), http.StatusBadRequest, apperr.CodeInactiveAccount, ""},
		{"not_found", apperr.NotFound("User"), http.StatusNotFound, apperr.CodeNotFound, ""},
		{"conflict", apperr.Conflict("User already exists"), http.StatusConflict, apperr.CodeConflict, ""},
		{"store_unavailable", apperr.StoreUnavailable(errors.New("dial")), http.StatusInternalServerError, apperr.CodeStoreUnavailable, ""},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.challenge, tt.err.Challenge)
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "User not found", apperr.NotFound("User").Error())
}

func TestIs_ComparesKindAndMessage(t *testing.T) {
	sentinel := apperr.NotFound("User")
	wrapped := fmt.Errorf("lookup: %w", apperr.NotFound("User"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, apperr.NotFound("Token"))
	assert.NotErrorIs(t, apperr.InvalidCredentials("a"), apperr.Unauthenticated("a"))
}

func TestStoreUnavailable_HidesCause(t *testing.T) {
	cause := errors.New("connection refused 10.0.0.3:5432")
	err := apperr.StoreUnavailable(cause)

	assert.NotContains(t, err.Error(), "10.0.0.3")
	assert.ErrorIs(t, err, cause)
}

func TestAsAndHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", apperr.Conflict("dup"))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.True(t, apperr.IsAppError(err))
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	plain := errors.New("plain")
	assert.Nil(t, apperr.As(plain))
	assert.False(t, apperr.IsAppError(plain))
	assert.False(t, apperr.HasCode(plain, apperr.CodeConflict))
}
