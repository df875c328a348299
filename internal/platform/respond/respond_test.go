// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/respond"
)

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"greet": "hi"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"greet": "hi"}`, recorder.Body.String())
}

func TestError_AuthenticationChallenge(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)

	respond.Error(recorder, request, apperr.InvalidCredentials("Could not validate credentials"))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Bearer", recorder.Header().Get("WWW-Authenticate"))

	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, apperr.CodeInvalidCredentials, envelope.Code)
	assert.Equal(t, "Could not validate credentials", envelope.Error)
}

func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPut, "/users/update", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "username", Message: "Username cannot be changed"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, recorder.Header().Get("WWW-Authenticate"))

	envelope := decodeEnvelope(t, recorder)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "username", envelope.Details[0].Field)
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "pq:")
	assert.Equal(t, apperr.CodeInternal, decodeEnvelope(t, recorder).Code)
}
