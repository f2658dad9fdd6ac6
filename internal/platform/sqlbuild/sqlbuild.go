// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package sqlbuild composes the parameterized queries shared by every resource
store: paginated/filtered/searched list queries with their predicate-matched
counts, and single-row find/update/delete statements.

# Injection Safety

Query text is assembled exclusively from [schema] descriptors and numbered
placeholders; every user-supplied value — search terms, equality filters,
identifiers, patch values — travels as a bind argument. ILIKE metacharacters
in search terms are escaped so a term matches literally.

# Pagination Semantics

List and Count are two independent statements over the same predicate. A write
committed between them can skew count against rows by at most the number of
concurrently committed writes; pagination is best-effort by design, not
transactionally consistent.
*/
package sqlbuild

import (
	"fmt"
	"strings"
)

// Filter is an equality constraint on a named column.
type Filter struct {
	Column string
	Value  any
}

// Assignment is one SET clause entry of a partial update.
type Assignment struct {
	Column string
	Value  any
}

// ListSpec describes a paginated list query.
type ListSpec struct {
	Table   string
	Columns []string

	// OrderBy is a raw column/direction pair from a schema descriptor,
	// e.g. "createdat DESC". Never derived from request input.
	OrderBy string

	// Filters are ANDed equality constraints.
	Filters []Filter

	// Search, when non-empty, matches rows where ANY of SearchColumns
	// contains the term as a case-insensitive substring. The search clause
	// is ANDed with the equality filters.
	Search        string
	SearchColumns []string

	Limit  int
	Offset int
}

// List returns the row-fetch statement and its bind arguments.
func List(spec ListSpec) (string, []any) {
	where, args := predicate(spec)

	var builder strings.Builder
	fmt.Fprintf(&builder, "SELECT %s FROM %s", strings.Join(spec.Columns, ", "), spec.Table)
	builder.WriteString(where)
	if spec.OrderBy != "" {
		fmt.Fprintf(&builder, " ORDER BY %s", spec.OrderBy)
	}
	fmt.Fprintf(&builder, " LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, spec.Limit, spec.Offset)

	return builder.String(), args
}

// Count returns the count statement over the same predicate as [List] —
// equality filters and search both apply, limit/offset do not.
func Count(spec ListSpec) (string, []any) {
	where, args := predicate(spec)
	return fmt.Sprintf("SELECT count(*) FROM %s%s", spec.Table, where), args
}

// Find returns a single-row lookup by id.
func Find(table string, columns []string, idColumn string, id any) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(columns, ", "), table, idColumn)
	return query, []any{id}
}

// Update returns a partial-update statement applying only the given
// assignments, refreshing updatedAtColumn to NOW(), and returning all columns
// of the updated row. An empty assignment list still refreshes the timestamp.
func Update(table string, columns []string, idColumn string, id any, set []Assignment, updatedAtColumn string) (string, []any) {
	args := []any{id}
	clauses := make([]string, 0, len(set)+1)

	for _, assignment := range set {
		args = append(args, assignment.Value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", assignment.Column, len(args)))
	}
	clauses = append(clauses, updatedAtColumn+" = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1 RETURNING %s",
		table, strings.Join(clauses, ", "), idColumn, strings.Join(columns, ", "))
	return query, args
}

// Delete returns a single-row delete returning the removed row.
func Delete(table string, columns []string, idColumn string, id any) (string, []any) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING %s",
		table, idColumn, strings.Join(columns, ", "))
	return query, []any{id}
}

// predicate builds the shared WHERE clause for [List] and [Count].
func predicate(spec ListSpec) (string, []any) {
	var conditions []string
	var args []any

	for _, filter := range spec.Filters {
		args = append(args, filter.Value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", filter.Column, len(args)))
	}

	if spec.Search != "" && len(spec.SearchColumns) > 0 {
		args = append(args, "%"+escapeLike(spec.Search)+"%")
		placeholder := len(args)

		matches := make([]string, 0, len(spec.SearchColumns))
		for _, column := range spec.SearchColumns {
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", column, placeholder))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so search terms match literally.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
