// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/usergate/internal/platform/ctxkey"
	"github.com/taibuivan/usergate/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/usergate/internal/platform/request"
	"github.com/taibuivan/usergate/internal/platform/respond"
)

// # Authorization Gate

// UserResolver turns a bearer token into an active user record.
type UserResolver interface {
	ResolveActiveUser(ctx context.Context, token string) (*User, error)
}

/*
Gate blocks every request that does not carry a token for an active account.

# Flow
 1. Extract 'Authorization: Bearer <token>'; absent or malformed gives 401 UNAUTHENTICATED.
 2. Verify the token and load its user; either failing gives 401 INVALID_CREDENTIALS.
 3. Reject disabled accounts with 400 INACTIVE_ACCOUNT.
 4. Inject the [*User] and an identity-tagged logger into the request context.
*/
func Gate(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, err := requestutil.BearerToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			user, err := resolver.ResolveActiveUser(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			logger := ctxutil.GetLogger(request.Context()).With(slog.String("username", user.Username))
			ctx := ctxutil.WithLogger(WithUser(request.Context(), user), logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user placed in ctx by [Gate], or nil.
func UserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(ctxkey.KeyUser).(*User)
	if !ok {
		return nil
	}
	return user
}

// WithUser returns a copy of ctx carrying user, as [Gate] does.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}
