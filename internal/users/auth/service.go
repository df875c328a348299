// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider issues and verifies signed session tokens.
type TokenProvider interface {
	// Issue creates a signed token whose subject is identity.
	Issue(identity string, timeToLive time.Duration) (string, error)

	// Verify checks signature and expiry and returns the subject.
	Verify(token string) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of the password.
	Hash(plainTextPassword string) (string, error)

	// Verify reports whether the password matches the hash. Malformed hashes never match.
	Verify(plainTextPassword, existingHash string) bool
}

// Service implements login, provisioning and the token-to-user resolution
// used by the authorization gate.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login or
// token resolution must keep the failure outcomes indistinguishable to clients.
type Service struct {
	userRepository UserRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	accessTokenTTL time.Duration
	dummyHash      func() string
}

// NewService constructs a new [Service] with necessary dependencies.
//
// A non-positive accessTokenTTL selects [AccessTokenTTL].
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokenProv TokenProvider,
	accessTokenTTL time.Duration,
) *Service {
	if accessTokenTTL <= 0 {
		accessTokenTTL = AccessTokenTTL
	}

	return &Service{
		userRepository: userRepo,
		passwordHasher: hasher,
		tokenProvider:  tokenProv,
		accessTokenTTL: accessTokenTTL,
		dummyHash: sync.OnceValue(func() string {
			hash, err := hasher.Hash(dummyPassword)
			if err != nil {
				return fallbackDummyHash
			}
			return hash
		}),
	}
}

// # Authentication Flow

/*
Login validates user credentials and issues an access token.

Description: Unknown usernames and wrong passwords produce the same error, and
both cost one bcrypt comparison.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - string: Signed access token
  - error: ErrIncorrectLogin, store failures, or signing failures
*/
func (service *Service) Login(ctx context.Context, username, password string) (string, error) {
	identity, err := CanonicalUsername(username)
	if err != nil {
		// Records stored before canonicalisation are matched exactly.
		identity = username
	}

	user, err := service.userRepository.FindByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			service.passwordHasher.Verify(password, service.dummyHash())
			return "", ErrIncorrectLogin
		}
		return "", err
	}

	if !service.passwordHasher.Verify(password, user.PasswordHash) {
		return "", ErrIncorrectLogin
	}

	accessToken, err := service.tokenProvider.Issue(user.Username, service.accessTokenTTL)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	return accessToken, nil
}

// # Token Resolution

/*
ResolveUser turns a presented token into the stored user it names.

Description: A token that fails verification and a valid token whose account
no longer exists produce the same ErrInvalidToken.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *User: Full record, including the password hash
  - error: ErrInvalidToken or store failures
*/
func (service *Service) ResolveUser(ctx context.Context, token string) (*User, error) {
	identity, err := service.tokenProvider.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := service.userRepository.FindByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

/*
ResolveActiveUser is [Service.ResolveUser] followed by the active-account check.

Returns:
  - *User: Full record of an enabled account
  - error: ErrInvalidToken, ErrInactiveUser, or store failures
*/
func (service *Service) ResolveActiveUser(ctx context.Context, token string) (*User, error) {
	user, err := service.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if !user.Active() {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// # Provisioning

// ProvisionInput holds the data required to create an account.
type ProvisionInput struct {
	Username string
	Password string
	Email    *string
	Name     *string
	Disabled bool
}

/*
Provision validates, hashes and persists a brand new user account.

Parameters:
  - ctx: context.Context
  - input: ProvisionInput

Returns:
  - *User: Created entity
  - error: Validation errors, ErrUserExists, or store failures
*/
func (service *Service) Provision(ctx context.Context, input ProvisionInput) (*User, error) {
	canonical, err := CanonicalUsername(input.Username)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength, "Password must be at most 72 bytes")
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, MaxProfileFieldLength)
	}
	if input.Name != nil {
		validator.MaxLen(FieldName, *input.Name, MaxProfileFieldLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := service.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		Username:     canonical,
		Email:        input.Email,
		Name:         input.Name,
		Disabled:     input.Disabled,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
