// Copyright (c) 2026 Inkpress. All rights reserved.

// PostgreSQL implementation of the users [Repository].
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] values by [dberr.Wrap] so handlers never
// see driver details.

package users

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/database/schema"
	"github.com/inkpress/inkpress/internal/platform/dberr"
	"github.com/inkpress/inkpress/internal/platform/sqlbuild"
)

const resourceName = "User"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO ` + schema.Users.Table + ` (
			id, email, username, displayname, passwordhash, passwordsalt, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Email,
		user.Username,
		user.DisplayName,
		user.PasswordHash,
		user.PasswordSalt,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, resourceName)
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	spec := sqlbuild.ListSpec{
		Table:   schema.Users.Table,
		Columns: schema.Users.Columns(),
		OrderBy: schema.Users.CreatedAt + " ASC",
		Limit:   limit,
		Offset:  offset,
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

	result := []*User{}
	for rows.Next() {
		user := &User{}
		if err := scanUser(rows.Scan, user); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		result = append(result, user)
	}

	return result, total, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query, args := sqlbuild.Find(schema.Users.Table, schema.Users.Columns(), schema.Users.ID, id)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, args...).Scan, user); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}

// FindByLogin resolves a user by email or username in a single round trip,
// for sign-in with either identifier.
func (repository *PostgresRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := `
		SELECT ` + strings.Join(schema.Users.Columns(), ", ") + `
		FROM ` + schema.Users.Table + `
		WHERE ` + schema.Users.Email + ` = $1 OR ` + schema.Users.Username + ` = $1`

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, login).Scan, user); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch) (*User, error) {
	var set []sqlbuild.Assignment

	if patch.Email != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Users.Email, Value: *patch.Email})
	}
	if patch.Username != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Users.Username, Value: *patch.Username})
	}
	if patch.DisplayName != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Users.DisplayName, Value: *patch.DisplayName})
	}
	if patch.PasswordHash != nil {
		set = append(set, sqlbuild.Assignment{Column: schema.Users.PasswordHash, Value: *patch.PasswordHash})
		set = append(set, sqlbuild.Assignment{Column: schema.Users.PasswordSalt, Value: *patch.PasswordSalt})
	}

	query, args := sqlbuild.Update(schema.Users.Table, schema.Users.Columns(), schema.Users.ID, id, set, schema.Users.UpdatedAt)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, args...).Scan, user); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (*User, error) {
	query, args := sqlbuild.Delete(schema.Users.Table, schema.Users.Columns(), schema.Users.ID, id)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, args...).Scan, user); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}

// scanUser reads one row in [schema.Users.Columns] order.
func scanUser(scan func(...any) error, user *User) error {
	return scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.DisplayName,
		&user.PasswordHash,
		&user.PasswordSalt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

