// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the relational tables and columns used by the
// PostgreSQL store, so SQL is assembled from one definition.
package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table          string
	Username       string
	Email          string
	Name           string
	Disabled       string
	HashedPassword string
	CreatedAt      string
	UpdatedAt      string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:          "users",
	Username:       "username",
	Email:          "email",
	Name:           "name",
	Disabled:       "disabled",
	HashedPassword: "hashed_password",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

// Columns returns the columns read into a user record, in scan order
func (t UsersTable) Columns() []string {
	return []string{t.Username, t.Email, t.Name, t.Disabled, t.HashedPassword}
}
