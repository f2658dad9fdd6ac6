// Copyright (c) 2026 Inkpress. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/dberr"
)

/*
TestWrap_NoRows verifies the missing-row mapping carries the resource name.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "User")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "User not found.", ae.Message)
}

/*
TestWrap_UniqueViolation verifies the documented 23505 detail format is parsed
into a conflict naming the offending column.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	tests := []struct {
		name        string
		detail      string
		wantMessage string
	}{
		{
			"email_column",
			"Key (email)=(a@x.com) already exists.",
			"Duplicate value for email.",
		},
		{
			"username_column",
			"Key (username)=(gopher) already exists.",
			"Duplicate value for username.",
		},
		{
			"composite_key",
			"Key (userid, title)=(u1, hello) already exists.",
			"Duplicate value for userid, title.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: tt.detail,
			}

			err := dberr.Wrap(pgErr, "User")
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
			assert.Equal(t, tt.wantMessage, ae.Message)
		})
	}
}

/*
TestWrap_DetailDrift verifies that a unique violation whose detail payload
does not match the documented format degrades to an opaque internal error
instead of a half-built conflict.
*/
func TestWrap_DetailDrift(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "some future postgres wording",
	}

	err := dberr.Wrap(pgErr, "User")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

/*
TestWrap_OtherErrors verifies non-unique database failures stay opaque and
keep their cause for server-side logging.
*/
func TestWrap_OtherErrors(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := dberr.Wrap(cause, "Post")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.Equal(t, cause, ae.Cause)

	// Foreign-key violations are not conflicts; they indicate a bug upstream.
	fkErr := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	ae = apperr.As(dberr.Wrap(fkErr, "Post"))
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

/*
TestWrap_Nil verifies nil passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "User"))
}
