// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/sec"
	"github.com/taibuivan/usergate/internal/users/account"
	"github.com/taibuivan/usergate/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	router     http.Handler
	repository *auth.MemoryUserRepository
	auth       *auth.Service
	accounts   *account.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, "HS256")
	require.NoError(t, err)
	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	repository := auth.NewMemoryUserRepository()
	authService := auth.NewService(repository, hasher, tokens, 30*time.Minute)
	accountService := account.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Mount("/login", auth.NewHandler(authService).Routes())
	router.Mount("/users", account.NewHandler(accountService, auth.Gate(authService)).Routes())

	return &fixture{
		router:     router,
		repository: repository,
		auth:       authService,
		accounts:   accountService,
	}
}

func (f *fixture) provision(t *testing.T, username, password string) {
	t.Helper()

	email := username + "@gmail.com"
	_, err := f.auth.Provision(context.Background(), auth.ProvisionInput{
		Username: username,
		Password: password,
		Email:    &email,
	})
	require.NoError(t, err)
}

func (f *fixture) login(t *testing.T, username, password string) string {
	t.Helper()

	var body map[string]string
	apitest.New().
		Handler(f.router).
		Post("/login/").
		FormData("username", username).
		FormData("password", password).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&body)

	require.NotEmpty(t, body["access_token"])
	return body["access_token"]
}

func TestAccount_LoginReadDeleteLifecycle(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")

	token := f.login(t, "test", "test123")

	apitest.New().
		Handler(f.router).
		Get("/users/me/").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "test")).
		Assert(jsonpath.Equal("$.email", "test@gmail.com")).
		Assert(jsonpath.Equal("$.disabled", false)).
		Assert(jsonpath.NotPresent("$.hashed_password")).
		End()

	apitest.New().
		Handler(f.router).
		Delete("/users/delete/").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"detail": "User test deleted successfully"}`).
		End()

	apitest.New().
		Handler(f.router).
		Get("/users/me/").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Header("WWW-Authenticate", "Bearer").
		Assert(jsonpath.Equal("$.code", apperr.CodeInvalidCredentials)).
		End()
}

func TestAccount_RoutesWithoutTrailingSlash(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")
	token := f.login(t, "test", "test123")

	apitest.New().
		Handler(f.router).
		Get("/users/me").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "test")).
		End()
}

func TestAccount_RequiresToken(t *testing.T) {
	f := newFixture(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users/me/"},
		{http.MethodGet, "/users/me/details/"},
		{http.MethodPut, "/users/update/"},
		{http.MethodDelete, "/users/delete/"},
	} {
		t.Run(route.method+route.path, func(t *testing.T) {
			apitest.New().
				Handler(f.router).
				Method(route.method).
				URL(route.path).
				Expect(t).
				Status(http.StatusUnauthorized).
				Header("WWW-Authenticate", "Bearer").
				Assert(jsonpath.Equal("$.code", apperr.CodeUnauthenticated)).
				End()
		})
	}
}

func TestAccount_Details(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")
	token := f.login(t, "test", "test123")

	apitest.New().
		Handler(f.router).
		Get("/users/me/details/").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		Assert(jsonpath.Equal("$[0].id", float64(1))).
		Assert(jsonpath.Equal("$[0].owner.username", "test")).
		Assert(jsonpath.NotPresent("$[0].owner.hashed_password")).
		End()
}

func TestAccount_PartialUpdateKeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")
	token := f.login(t, "test", "test123")

	apitest.New().
		Handler(f.router).
		Put("/users/update/").
		Header("Authorization", "Bearer "+token).
		JSON(`{"name": "new", "email": null, "username": "test", "disabled": false}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.name", "new")).
		Assert(jsonpath.Equal("$.email", "test@gmail.com")).
		Assert(jsonpath.NotPresent("$.hashed_password")).
		End()

	stored, err := f.repository.FindByUsername(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "new", *stored.Name)
	assert.Equal(t, "test@gmail.com", *stored.Email)

	// The password still verifies after the update.
	f.login(t, "test", "test123")
}

func TestAccount_UpdateRejections(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")
	token := f.login(t, "test", "test123")

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"rename", `{"username": "other"}`, "username"},
		{"disable_self", `{"disabled": true}`, "disabled"},
		{"bad_email", `{"email": "not-an-email"}`, "email"},
		{"non_string_name", `{"name": 5}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apitest.New().
				Handler(f.router).
				Put("/users/update/").
				Header("Authorization", "Bearer "+token).
				JSON(tt.body).
				Expect(t).
				Status(http.StatusBadRequest).
				Assert(jsonpath.Equal("$.code", apperr.CodeValidation)).
				Assert(jsonpath.Equal("$.details[0].field", tt.field)).
				End()
		})
	}

	stored, err := f.repository.FindByUsername(context.Background(), "test")
	require.NoError(t, err)
	assert.Nil(t, stored.Name)
	assert.False(t, stored.Disabled)
}

func TestAccount_UpdateRejectsNonObjectBody(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "test", "test123")
	token := f.login(t, "test", "test123")

	apitest.New().
		Handler(f.router).
		Put("/users/update/").
		Header("Authorization", "Bearer "+token).
		JSON(`["name"]`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeValidation)).
		End()
}
