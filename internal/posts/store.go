// Copyright (c) 2026 Inkpress. All rights reserved.

package posts

import "context"

// Repository is the storage contract for posts.
//
// List returns one page plus the total count over the same predicate —
// equality filter and search both apply to the count.
type Repository interface {
	Create(context context.Context, post *Post) error
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)
	FindByID(context context.Context, id string) (*Post, error)
	Update(context context.Context, id string, patch Patch) (*Post, error)
	Delete(context context.Context, id string) (*Post, error)
}
