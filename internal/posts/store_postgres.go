// Copyright (c) 2026 Inkpress. All rights reserved.

package posts

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/database/schema"
	"github.com/inkpress/inkpress/internal/platform/dberr"
	"github.com/inkpress/inkpress/internal/platform/sqlbuild"
)

const resourceName = "Post"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	query := `
		INSERT INTO ` + schema.Posts.Table + ` (
			id, title, content, publishedat, userid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		post.ID,
		post.Title,
		post.Content,
		post.PublishedAt,
		post.AuthorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	return dberr.Wrap(err, resourceName)
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	spec := sqlbuild.ListSpec{
		Table:   schema.Posts.Table,
		Columns: schema.Posts.Columns(),
		OrderBy: schema.Posts.CreatedAt + " DESC",
		Limit:   limit,
		Offset:  offset,

		Search:        filter.Search,
		SearchColumns: []string{schema.Posts.Title, schema.Posts.Content},
	}
	if filter.AuthorID != "" {
		spec.Filters = append(spec.Filters, sqlbuild.Filter{Column: schema.Posts.UserID, Value: filter.AuthorID})
	}

	countQuery, countArgs := sqlbuild.Count(spec)
	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	listQuery, listArgs := sqlbuild.List(spec)
	rows, err := repository.pool.Query(context, listQuery, listArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	result := []*Post{}
	for rows.Next() {
		post := &Post{}
		if err := scanPost(rows.Scan, post); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		result = append(result, post)
	}

	return result, total, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	query, args := sqlbuild.Find(schema.Posts.Table, schema.Posts.Columns(), schema.Posts.ID, id)

	post := &Post{}
	if err := scanPost(repository.pool.QueryRow(context, query, args...).Scan, post); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return post, nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch) (*Post, error) {
	var set []sqlbuild.Assignment

	if patch.Title != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Posts.Title, Value: *patch.Title})
	}
	if patch.Content != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Posts.Content, Value: *patch.Content})
	}
	if patch.PublishedAt != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Posts.PublishedAt, Value: *patch.PublishedAt})
	}

	query, args := sqlbuild.Update(schema.Posts.Table, schema.Posts.Columns(), schema.Posts.ID, id, set, schema.Posts.UpdatedAt)

	post := &Post{}
	if err := scanPost(repository.pool.QueryRow(context, query, args...).Scan, post); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return post, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (*Post, error) {
	query, args := sqlbuild.Delete(schema.Posts.Table, schema.Posts.Columns(), schema.Posts.ID, id)

	post := &Post{}
	if err := scanPost(repository.pool.QueryRow(context, query, args...).Scan, post); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return post, nil
}

// scanPost reads one row in [schema.Posts.Columns] order.
func scanPost(scan func(...any) error, post *Post) error {
	return scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.PublishedAt,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
}
