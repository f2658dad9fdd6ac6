// Copyright (c) 2026 Inkpress. All rights reserved.

package schema

import "regexp"

// usernameRegex restricts usernames to lowercase letters, digits, underscores.
var usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Bounds carries the pagination limits a deployment allows. It is derived
// from configuration once at startup and baked into the route schemas.
type Bounds struct {
	MinLimit     int
	MaxLimit     int
	DefaultLimit int
}

// # Shared Field Policies
//
// Constructors below define the single source of truth for how each field
// class is validated. Resource schemas compose them instead of restating
// constraints.

// LimitField bounds the page size to [b.MinLimit, b.MaxLimit] inclusive and
// defaults to b.DefaultLimit when absent.
func LimitField(b Bounds) Field {
	return Field{Name: "limit", Type: Int, Min: b.MinLimit, Max: b.MaxLimit, Default: b.DefaultLimit}
}

// OffsetField is a non-negative integer defaulting to 0.
func OffsetField() Field {
	return Field{Name: "offset", Type: Int, Min: 0, Max: maxOffset, Default: 0}
}

// maxOffset guards against pathological OFFSET values; list pagination is
// best-effort, not a bulk-export mechanism.
const maxOffset = 1_000_000

// IDField is a UUID-formatted identifier, the uniform id format of the store.
func IDField(name string) Field {
	return Field{Name: name, UUID: true}
}

// EmailField requires RFC-parseable email syntax.
func EmailField() Field {
	return Field{Name: "email", Email: true, Max: 254}
}

// UsernameField is 3-30 characters from [a-z0-9_].
func UsernameField() Field {
	return Field{
		Name:    "username",
		Min:     3,
		Max:     30,
		Pattern: usernameRegex,
		Hint:    "Must contain only lowercase letters, digits, and underscores",
	}
}

// DisplayNameField is free text, 1-80 characters.
func DisplayNameField() Field {
	return Field{Name: "displayName", Min: 1, Max: 80}
}

// PasswordField is 8-128 characters.
func PasswordField() Field {
	return Field{Name: "password", Min: 8, Max: 128}
}

// SearchField is length-bounded free text to keep ILIKE patterns sane.
func SearchField() Field {
	return Field{Name: "search", Max: 100}
}

// TitleField is a post title, 1-200 characters.
func TitleField() Field {
	return Field{Name: "title", Min: 1, Max: 200}
}

// ContentField is a post body, 1-20000 characters.
func ContentField() Field {
	return Field{Name: "content", Min: 1, Max: 20000}
}

// PublishedAtField is an optional RFC 3339 instant; absent means draft.
func PublishedAtField() Field {
	return Field{Name: "publishedAt", Type: Time}
}
