// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/constants"
	requestutil "github.com/taibuivan/usergate/internal/platform/request"
	"github.com/taibuivan/usergate/internal/platform/validate"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
	}{
		{"canonical", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase_scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"surrounding_space", "  Bearer   abc.def.ghi  ", "abc.def.ghi"},
		{"missing", "", ""},
		{"basic_scheme", "Basic dGVzdA==", ""},
		{"scheme_only", "Bearer", ""},
		{"two_tokens", "Bearer abc def", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			token, err := requestutil.BearerToken(request)
			if tt.token == "" {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
				assert.Equal(t, constants.MessageNotAuthenticated, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestIsJSON(t *testing.T) {
	for contentType, want := range map[string]bool{
		"application/json":                  true,
		"application/json; charset=utf-8":   true,
		"application/merge-patch+json":      true,
		"application/x-www-form-urlencoded": false,
		"":                                  false,
	} {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request.Header.Set("Content-Type", contentType)
		assert.Equal(t, want, requestutil.IsJSON(request), contentType)
	}
}

func TestDecodeFields(t *testing.T) {
	request := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name": "new", "email": null}`))

	fields, err := requestutil.DecodeFields(request)
	require.NoError(t, err)

	assert.Equal(t, `"new"`, string(fields["name"]))
	assert.Equal(t, "null", string(fields["email"]))
	_, present := fields["username"]
	assert.False(t, present)
}

func TestDecodeFields_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`null`, `[1, 2]`, `"text"`, `{"name":`} {
		request := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))

		_, err := requestutil.DecodeFields(request)
		assert.ErrorIs(t, err, validate.ErrInvalidJSON, body)
	}
}

func TestParseForm(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=test&password=test123"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.NoError(t, requestutil.ParseForm(httptest.NewRecorder(), request))
	assert.Equal(t, "test", request.PostForm.Get("username"))
	assert.Equal(t, "test123", request.PostForm.Get("password"))
}
