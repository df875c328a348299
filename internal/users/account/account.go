// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the caller's own user record: reading it, applying
partial profile updates, and deleting it.

# Architecture

  - Entities: DetailsEntry (the list envelope of the details endpoint).
  - Domain: This package depends on the auth package for the User entity and
    for the gate that resolves the caller.
  - Security: Every view is built from auth.Profile, so the password hash is
    never serialized.
*/
package account

import (
	"context"

	"github.com/taibuivan/usergate/internal/users/auth"
)

// # Domain Entities

// DetailsEntry is one element of the details listing.
type DetailsEntry struct {
	ID    int          `json:"id"`
	Owner auth.Profile `json:"owner"`
}

// DeleteResult confirms a deleted account.
type DeleteResult struct {
	Detail string `json:"detail"`
}

// # Repository Contracts

// AccountRepository is the part of the credential store the account
// operations need. [auth.UserRepository] satisfies it.
type AccountRepository interface {
	/*
		FindByUsername retrieves a user record by its username.

		Returns:
		  - *auth.User: Hydrated entity
		  - error: auth.ErrUserNotFound or store failures
	*/
	FindByUsername(ctx context.Context, username string) (*auth.User, error)

	/*
		UpdateFields applies the supplied profile fields.

		Returns:
		  - error: auth.ErrUserNotFound or store failures
	*/
	UpdateFields(ctx context.Context, username string, changes auth.Changes) error

	/*
		Delete removes the record.

		Returns:
		  - error: auth.ErrUserNotFound or store failures
	*/
	Delete(ctx context.Context, username string) error
}
