// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package users implements the user account resource.

It defines the core domain entity and the registration, lookup, partial
update, and deletion flows behind the /users endpoints.

# Architecture

This layer is the "Truth" of the system for account data. Credential material
(hash, salt) never crosses the JSON boundary; it exists only between the
store and the credential hasher.
*/
package users

import "time"

// # Domain Entities

// User represents a registered member.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	PasswordSalt string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Patch holds the optional fields of a partial update. nil means untouched.
type Patch struct {
	Email        *string
	Username     *string
	DisplayName  *string
	PasswordHash *string
	PasswordSalt *string
}

// # Field Identifiers

// Global field names for validation and identity mapping in the users domain.
const (
	FieldUserID      = "userId"
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDisplayName = "displayName"
)
