// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/usergate/internal/platform/constants"
	"github.com/taibuivan/usergate/internal/platform/sec"
)

// # Authentication Constraints

const (
	// AccessTokenTTL is the default lifetime of a login token when the
	// configuration does not override it.
	AccessTokenTTL = 30 * time.Minute

	// MaxUsernameLength bounds identities accepted at provisioning.
	MaxUsernameLength = 64

	// MaxProfileFieldLength bounds the mutable profile fields.
	MaxProfileFieldLength = 256

	// MaxPasswordLength is the longest password bcrypt can hash.
	MaxPasswordLength = sec.MaxPasswordBytes
)

// # Client Messages

const (
	MessageIncorrectLogin    = "Incorrect username or password"
	MessageInvalidToken      = "Could not validate credentials"
	MessageNotAuthenticated  = constants.MessageNotAuthenticated
	MessageInactiveUser      = "Inactive user"
	MessageUserExists        = "User already exists"
	MessageUsernameImmutable = "Username cannot be changed"
	MessageDisabledReadOnly  = "Account status cannot be changed through this endpoint"
)

// dummyPassword is hashed once and compared against on unknown-user logins
// so both failure paths cost one bcrypt comparison.
const dummyPassword = "usergate-dummy-password"

// fallbackDummyHash stands in for the dummy hash if the configured hasher
// cannot produce one. It is a well-formed cost-10 bcrypt hash.
const fallbackDummyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"
