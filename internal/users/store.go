// Copyright (c) 2026 Inkpress. All rights reserved.

package users

import "context"

// Repository is the storage contract for user accounts.
//
// List returns one page of users plus the total count over the same
// (unfiltered) predicate. Update applies only the non-nil patch fields and
// returns the refreshed row. Delete returns the removed row.
type Repository interface {
	Create(context context.Context, user *User) error
	List(context context.Context, limit, offset int) ([]*User, int, error)
	FindByID(context context.Context, id string) (*User, error)
	FindByLogin(context context.Context, login string) (*User, error)
	Update(context context.Context, id string, patch Patch) (*User, error)
	Delete(context context.Context, id string) (*User, error)
}
