// Copyright (c) 2026 Inkpress. All rights reserved.

package sqlbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/platform/sqlbuild"
)

var postColumns = []string{"id", "title", "content", "publishedat", "userid", "createdat", "updatedat"}

/*
TestList_NoPredicate covers the bare paginated list: no filters, no search.
*/
func TestList_NoPredicate(t *testing.T) {
	query, args := sqlbuild.List(sqlbuild.ListSpec{
		Table:   "posts",
		Columns: postColumns,
		OrderBy: "createdat DESC",
		Limit:   20,
		Offset:  40,
	})

	assert.Equal(t,
		"SELECT id, title, content, publishedat, userid, createdat, updatedat FROM posts"+
			" ORDER BY createdat DESC LIMIT $1 OFFSET $2",
		query)
	assert.Equal(t, []any{20, 40}, args)
}

/*
TestList_FiltersAndSearch verifies equality filters AND the ILIKE-OR search
clause share one predicate, with correctly numbered placeholders.
*/
func TestList_FiltersAndSearch(t *testing.T) {
	query, args := sqlbuild.List(sqlbuild.ListSpec{
		Table:         "posts",
		Columns:       []string{"id"},
		OrderBy:       "createdat DESC",
		Filters:       []sqlbuild.Filter{{Column: "userid", Value: "u1"}},
		Search:        "gopher",
		SearchColumns: []string{"title", "content"},
		Limit:         10,
		Offset:        0,
	})

	assert.Equal(t,
		"SELECT id FROM posts"+
			" WHERE userid = $1 AND (title ILIKE $2 OR content ILIKE $2)"+
			" ORDER BY createdat DESC LIMIT $3 OFFSET $4",
		query)
	assert.Equal(t, []any{"u1", "%gopher%", 10, 0}, args)
}

/*
TestCount_MatchesListPredicate verifies Count applies the identical predicate
as List (filters and search, no pagination), so totals never drift from rows.
*/
func TestCount_MatchesListPredicate(t *testing.T) {
	spec := sqlbuild.ListSpec{
		Table:         "posts",
		Columns:       []string{"id"},
		Filters:       []sqlbuild.Filter{{Column: "userid", Value: "u1"}},
		Search:        "go",
		SearchColumns: []string{"title", "content"},
		Limit:         10,
		Offset:        50,
	}

	query, args := sqlbuild.Count(spec)

	assert.Equal(t,
		"SELECT count(*) FROM posts WHERE userid = $1 AND (title ILIKE $2 OR content ILIKE $2)",
		query)
	assert.Equal(t, []any{"u1", "%go%"}, args)
}

/*
TestList_EscapesSearchTerm verifies LIKE metacharacters in the search term are
neutralized so they match literally.
*/
func TestList_EscapesSearchTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"percent", "100%", `%100\%%`},
		{"underscore", "a_b", `%a\_b%`},
		{"backslash", `a\b`, `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := sqlbuild.Count(sqlbuild.ListSpec{
				Table:         "posts",
				Columns:       []string{"id"},
				Search:        tt.term,
				SearchColumns: []string{"title"},
			})
			require.Len(t, args, 1)
			assert.Equal(t, tt.want, args[0])
		})
	}
}

/*
TestFind covers the single-row lookup.
*/
func TestFind(t *testing.T) {
	query, args := sqlbuild.Find("users", []string{"id", "email"}, "id", "u1")

	assert.Equal(t, "SELECT id, email FROM users WHERE id = $1", query)
	assert.Equal(t, []any{"u1"}, args)
}

/*
TestUpdate_Partial verifies only the supplied assignments are set, the
timestamp always refreshes, and the id binds as $1.
*/
func TestUpdate_Partial(t *testing.T) {
	query, args := sqlbuild.Update("users", []string{"id", "email", "updatedat"}, "id", "u1",
		[]sqlbuild.Assignment{
			{Column: "email", Value: "new@x.com"},
			{Column: "displayname", Value: "New Name"},
		}, "updatedat")

	assert.Equal(t,
		"UPDATE users SET email = $2, displayname = $3, updatedat = NOW()"+
			" WHERE id = $1 RETURNING id, email, updatedat",
		query)
	assert.Equal(t, []any{"u1", "new@x.com", "New Name"}, args)
}

/*
TestUpdate_EmptyPatch verifies an empty assignment list still refreshes the
timestamp, making a no-op PATCH observable in updatedat.
*/
func TestUpdate_EmptyPatch(t *testing.T) {
	query, args := sqlbuild.Update("users", []string{"id"}, "id", "u1", nil, "updatedat")

	assert.Equal(t, "UPDATE users SET updatedat = NOW() WHERE id = $1 RETURNING id", query)
	assert.Equal(t, []any{"u1"}, args)
}

/*
TestDelete covers the returning delete.
*/
func TestDelete(t *testing.T) {
	query, args := sqlbuild.Delete("users", []string{"id", "email"}, "id", "u1")

	assert.Equal(t, "DELETE FROM users WHERE id = $1 RETURNING id, email", query)
	assert.Equal(t, []any{"u1"}, args)
}
