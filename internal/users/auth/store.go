// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the credential store contract.
//
// Every method is a single store call. Implementations return [ErrUserNotFound]
// and [ErrUserExists] for the expected misses and wrap any other failure in
// apperr.StoreUnavailable.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity, including the password hash
		  - error: ErrUserNotFound or store failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: ErrUserExists or store failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		UpdateFields applies the supplied profile fields to one account.

		Parameters:
		  - ctx: context.Context
		  - username: string
		  - changes: Changes (non-empty)

		Returns:
		  - error: ErrUserNotFound when no record matched, or store failures
	*/
	UpdateFields(ctx context.Context, username string, changes Changes) error

	/*
		Delete removes one account.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - error: ErrUserNotFound when no record matched, or store failures
	*/
	Delete(ctx context.Context, username string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
