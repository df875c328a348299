// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider and PasswordHasher
// interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Settings

const (
	// DefaultTokenTTL is used when a caller issues a token without a positive TTL.
	DefaultTokenTTL = 15 * time.Minute

	// MinSecretLength is the minimum byte length accepted for the signing secret.
	MinSecretLength = 32
)

// ErrInvalidToken is returned for any token that fails verification: bad
// signature, malformed encoding, unexpected algorithm, missing or passed
// expiry, or an empty subject.
var ErrInvalidToken = errors.New("sec: invalid token")

// signingMethods lists the HMAC algorithms the service can be configured with.
var signingMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// TokenService issues and verifies HMAC-signed, time-limited session tokens.
//
// Tokens carry only the registered claims: sub (the identity), exp and iat.
// There is no revocation list; a token stays valid until exp.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// NewTokenService creates a [TokenService] for the given secret and algorithm name.
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", MinSecretLength)
	}

	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads the current time from now.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// Algorithm returns the JWT "alg" name the service signs with.
func (service *TokenService) Algorithm() string {
	return service.method.Alg()
}

/*
Issue creates a signed token whose subject is identity.

Token times have whole-second precision. The issue time is truncated to its
second and the token expires exactly timeToLive after it.

Parameters:
  - identity: The username the token speaks for.
  - timeToLive: Lifetime of the token; non-positive values use [DefaultTokenTTL].

Returns:
  - string: The compact serialized token
  - error: Signing failures
*/
func (service *TokenService) Issue(identity string, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		timeToLive = DefaultTokenTTL
	}

	currentTime := service.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
Verify checks the signature and expiry of a token and returns its subject.

The returned identity is only a claim: the account may have been deleted or
disabled since the token was issued.

Returns:
  - string: The subject claim
  - error: Wraps [ErrInvalidToken] on any failure
*/
func (service *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
