// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential and session core of usergate.

It defines the user record, the credential store contract with its backends,
login, and the authorization gate that turns a bearer token back into an
active user.

# Architecture

  - User: The stored record. PasswordHash never leaves the process.
  - UserRepository: Lookup, insert, partial update and delete by username.
  - Service: Login, provisioning, and token-to-user resolution.
  - Gate: HTTP middleware placing the resolved [User] in the request context.
*/
package auth

import (
	"github.com/taibuivan/usergate/internal/platform/apperr"
)

// # Domain Entities

// User is one stored account, keyed by its immutable Username.
type User struct {
	Username     string  `json:"username" bson:"username"`
	Email        *string `json:"email" bson:"email"`
	Name         *string `json:"name" bson:"name"`
	Disabled     bool    `json:"disabled" bson:"disabled"`
	PasswordHash string  `json:"hashed_password" bson:"hashed_password"`
}

// Active reports whether the account may use authenticated endpoints.
func (user *User) Active() bool {
	return !user.Disabled
}

// Profile is the redacted view of a [User] returned to clients.
type Profile struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Disabled bool    `json:"disabled"`
}

// Profile returns the redacted view of the user.
func (user *User) Profile() Profile {
	return Profile{
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Disabled: user.Disabled,
	}
}

// Clone returns a deep copy so stores never share pointers with callers.
func (user *User) Clone() *User {
	clone := *user
	clone.Email = cloneString(user.Email)
	clone.Name = cloneString(user.Name)
	return &clone
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

// # Partial Updates

// Changes is a partial update of the mutable profile fields.
//
// A nil field was not supplied (or was supplied as null) and is left untouched.
type Changes struct {
	Email *string
	Name  *string
}

// IsEmpty reports whether the change set would modify nothing.
func (changes Changes) IsEmpty() bool {
	return changes.Email == nil && changes.Name == nil
}

// Apply writes the supplied fields onto user.
func (changes Changes) Apply(user *User) {
	if changes.Email != nil {
		user.Email = cloneString(changes.Email)
	}
	if changes.Name != nil {
		user.Name = cloneString(changes.Name)
	}
}

// Fields returns the supplied fields keyed by their storage names.
func (changes Changes) Fields() map[string]string {
	fields := make(map[string]string, 2)
	if changes.Email != nil {
		fields[FieldEmail] = *changes.Email
	}
	if changes.Name != nil {
		fields[FieldName] = *changes.Name
	}
	return fields
}

// # Field Identifiers

// Field names shared by the wire format, validation details and storage.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldName     = "name"
	FieldDisabled = "disabled"
	FieldPassword = "password"
)

// # Domain Errors

var (
	// ErrUserNotFound is returned by stores when no record matches the username.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrUserExists is returned by stores when inserting a taken username.
	ErrUserExists = apperr.Conflict(MessageUserExists)

	// ErrIncorrectLogin is the single outcome of a failed login.
	ErrIncorrectLogin = apperr.InvalidCredentials(MessageIncorrectLogin)

	// ErrInvalidToken covers bad tokens and tokens naming a deleted account.
	ErrInvalidToken = apperr.InvalidCredentials(MessageInvalidToken)

	// ErrInactiveUser is returned by the gate for disabled accounts.
	ErrInactiveUser = apperr.InactiveAccount(MessageInactiveUser)
)
