// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
)

// # In-Memory Repository

// MemoryUserRepository is a process-local [UserRepository] for development and tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryUserRepository returns an empty in-memory store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*User)}
}

// FindByUsername returns a copy of the stored record.
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// Create inserts the record unless the username is taken.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.users[user.Username]; exists {
		return ErrUserExists
	}
	repository.users[user.Username] = user.Clone()
	return nil
}

// UpdateFields applies changes to the stored record.
func (repository *MemoryUserRepository) UpdateFields(_ context.Context, username string, changes Changes) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[username]
	if !ok {
		return ErrUserNotFound
	}
	changes.Apply(user)
	return nil
}

// Delete removes the stored record.
func (repository *MemoryUserRepository) Delete(_ context.Context, username string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[username]; !ok {
		return ErrUserNotFound
	}
	delete(repository.users, username)
	return nil
}

// Ping always succeeds.
func (repository *MemoryUserRepository) Ping(context.Context) error {
	return nil
}
