// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package dberr provides a bridge between low-level database errors and
higher-level application errors.

It hides storage-engine details from clients while classifying each failure:

  - pgx.ErrNoRows               -> NOT_FOUND
  - unique-constraint violation -> CONFLICT naming the offending column
  - anything else               -> INTERNAL_ERROR (opaque to the client)

# Detail Parsing Contract

PostgreSQL reports unique violations with SQLSTATE 23505 and a detail payload
of the documented form:

	Key (<column>)=(<value>) already exists.

The column name is extracted by [detailKeyRegex]. This is an explicit, tested
parsing contract — if the server's detail format ever drifts, the dberr tests
fail rather than the mapping silently degrading to a 500.
*/
package dberr

import (
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkpress/inkpress/internal/platform/apperr"
)

// detailKeyRegex extracts the violating column from a 23505 detail payload.
// Composite keys yield the full comma-separated column list.
var detailKeyRegex = regexp.MustCompile(`Key \(([^)]+)\)=`)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// The resource name is used for NOT_FOUND messages ("User not found.").
// A nil err passes through as nil.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Missing row mapping.
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique-constraint violations become structured conflicts.
	if conflict := ConflictColumn(err); conflict != "" {
		return apperr.Conflict("Duplicate value for " + conflict + ".")
	}

	// 3. Unknown storage errors are opaque internal failures.
	return apperr.Internal(err)
}

// ConflictColumn returns the column named by a unique-violation error, or ""
// when err is not a unique violation (or its detail cannot be parsed — the
// latter is treated as unhandled so callers fail loudly instead of producing
// a conflict with no column).
func ConflictColumn(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return ""
	}

	match := detailKeyRegex.FindStringSubmatch(pgErr.Detail)
	if match == nil {
		return ""
	}
	return match[1]
}
