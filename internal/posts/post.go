// Copyright (c) 2026 Inkpress. All rights reserved.

// Package posts implements the post resource: creation by authenticated
// authors, filtered/searched listing, and owner-gated mutation.
package posts

import "time"

// Post represents a single piece of writing.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// PublishedAt is nil for drafts.
	PublishedAt *time.Time `json:"publishedAt"`

	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter holds the optional list-query constraints.
type Filter struct {
	// AuthorID is an equality filter on the owning user.
	AuthorID string

	// Search matches title or content as a case-insensitive substring.
	Search string
}

// Patch holds the optional fields of a partial update. nil means untouched.
type Patch struct {
	Title       *string
	Content     *string
	PublishedAt *time.Time
}

// Global field names for validation in the posts domain.
const (
	FieldPostID      = "postId"
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldPublishedAt = "publishedAt"
	FieldUserID      = "userId"
	FieldSearch      = "search"
)
