// Copyright (c) 2026 Inkpress. All rights reserved.

package schema

// PostsTable describes the 'posts' table.
type PostsTable struct {
	Table       string
	ID          string
	Title       string
	Content     string
	PublishedAt string
	UserID      string
	CreatedAt   string
	UpdatedAt   string
}

// Posts is the schema definition for the posts table. publishedat is nullable
// (NULL means draft); userid references users.id.
var Posts = PostsTable{
	Table:       "posts",
	ID:          "id",
	Title:       "title",
	Content:     "content",
	PublishedAt: "publishedat",
	UserID:      "userid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all column names in scan order.
func (t PostsTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Content, t.PublishedAt,
		t.UserID, t.CreatedAt, t.UpdatedAt,
	}
}
