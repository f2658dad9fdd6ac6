// Copyright (c) 2026 Inkpress. All rights reserved.

// Package schema holds static table/column descriptors for the relational
// store. Query text is always composed from these descriptors — never from
// request input — so only bind parameters ever carry user-supplied values.
package schema

// UsersTable describes the 'users' table.
type UsersTable struct {
	Table        string
	ID           string
	Email        string
	Username     string
	DisplayName  string
	PasswordHash string
	PasswordSalt string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for the users table. email and username each
// carry a unique index; passwordhash and passwordsalt never leave the store
// layer in API responses.
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	Username:     "username",
	DisplayName:  "displayname",
	PasswordHash: "passwordhash",
	PasswordSalt: "passwordsalt",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all column names in scan order.
func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Username, t.DisplayName,
		t.PasswordHash, t.PasswordSalt, t.CreatedAt, t.UpdatedAt,
	}
}
