// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/usergate/internal/users/auth"
)

// # Service Layer

// Service orchestrates the account operations available to an active caller.
//
// Each operation issues independent store calls; a record deleted between the
// gate and the operation surfaces as auth.ErrUserNotFound (404).
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

// Profile returns the redacted view of the caller.
func (service *Service) Profile(user *auth.User) auth.Profile {
	return user.Profile()
}

// Details returns the details listing for the caller, without the password hash.
func (service *Service) Details(user *auth.User) []DetailsEntry {
	return []DetailsEntry{{ID: 1, Owner: user.Profile()}}
}

/*
UpdateProfile applies a partial set of changes to the caller's record.

Description: An empty change set writes nothing and returns the current
record. Otherwise the fields are written and the record re-read.

Parameters:
  - ctx: context.Context
  - username: string
  - changes: auth.Changes

Returns:
  - *auth.User: The record as stored after the update
  - error: auth.ErrUserNotFound or store failures
*/
func (service *Service) UpdateProfile(ctx context.Context, username string, changes auth.Changes) (*auth.User, error) {
	if !changes.IsEmpty() {
		if err := service.accountRepository.UpdateFields(ctx, username, changes); err != nil {
			return nil, err
		}
	}

	user, err := service.accountRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !changes.IsEmpty() {
		service.logger.InfoContext(ctx, "account_profile_updated",
			slog.String("username", username),
			slog.Int("fields", len(changes.Fields())),
		)
	}

	return user, nil
}

/*
DeleteAccount removes the caller's record.

Description: Tokens already issued for the account stay signed but are
rejected by the gate afterwards, since the identity no longer resolves.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *DeleteResult: Confirmation message
  - error: auth.ErrUserNotFound or store failures
*/
func (service *Service) DeleteAccount(ctx context.Context, username string) (*DeleteResult, error) {
	if err := service.accountRepository.Delete(ctx, username); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_deleted", slog.String("username", username))

	return &DeleteResult{Detail: fmt.Sprintf("User %s deleted successfully", username)}, nil
}
