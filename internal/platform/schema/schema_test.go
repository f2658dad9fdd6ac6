// Copyright (c) 2026 Inkpress. All rights reserved.

package schema_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/schema"
)

var testBounds = schema.Bounds{MinLimit: 1, MaxLimit: 100, DefaultLimit: 20}

/*
TestSchema_CollectsAllViolations verifies that evaluation never short-circuits:
every violated field is reported, in declaration order.
*/
func TestSchema_CollectsAllViolations(t *testing.T) {
	s := &schema.Schema{
		Body: []schema.Field{
			schema.EmailField().Require(),
			schema.PasswordField().Require(),
			schema.UsernameField().Require(),
		},
	}

	values, err := s.Validate(schema.Input{
		Body: map[string]any{"username": "ok_name"},
	})
	require.Error(t, err)
	assert.Nil(t, values)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, apperr.StatusValidationFailed, ae.HTTPStatus)

	require.Len(t, ae.Details, 2)
	assert.Equal(t, "email", ae.Details[0].Field)
	assert.Equal(t, "This field is required", ae.Details[0].Message)
	assert.Equal(t, "password", ae.Details[1].Field)
}

/*
TestSchema_LimitPolicy covers the pagination limit field: bounds, coercion,
and the default when absent.
*/
func TestSchema_LimitPolicy(t *testing.T) {
	s := &schema.Schema{
		Query: []schema.Field{schema.LimitField(testBounds), schema.OffsetField()},
	}

	tests := []struct {
		name      string
		query     url.Values
		wantLimit int
		wantErr   string
	}{
		{"absent_uses_default", url.Values{}, 20, ""},
		{"in_bounds", url.Values{"limit": {"50"}}, 50, ""},
		{"too_large", url.Values{"limit": {"200"}}, 0, "Must be between 1 and 100"},
		{"zero", url.Values{"limit": {"0"}}, 0, "Must be between 1 and 100"},
		{"not_a_number", url.Values{"limit": {"abc"}}, 0, "Must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := s.Validate(schema.Input{Query: tt.query})

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLimit, values.Int("limit"))
				assert.Equal(t, 0, values.Int("offset"))
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, "limit", ae.Details[0].Field)
			assert.Equal(t, tt.wantErr, ae.Details[0].Message)
		})
	}
}

/*
TestSchema_StringPolicies spot-checks the shared field constructors against
representative good and bad inputs.
*/
func TestSchema_StringPolicies(t *testing.T) {
	tests := []struct {
		name    string
		field   schema.Field
		value   any
		wantErr string
	}{
		{"email_ok", schema.EmailField(), "reader@example.com", ""},
		{"email_bad", schema.EmailField(), "not-an-email", "Must be a valid email address"},
		{"username_ok", schema.UsernameField(), "ink_press_01", ""},
		{"username_uppercase", schema.UsernameField(), "InkPress", "Must contain only lowercase letters, digits, and underscores"},
		{"username_too_short", schema.UsernameField(), "ab", "Minimum 3 characters"},
		{"password_too_short", schema.PasswordField(), "short", "Minimum 8 characters"},
		{"display_name_ok", schema.DisplayNameField(), "Ada Lovelace", ""},
		{"title_empty", schema.TitleField(), "", "Minimum 1 characters"},
		{"non_string_body_value", schema.TitleField(), 42, "Must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &schema.Schema{Body: []schema.Field{tt.field}}
			_, err := s.Validate(schema.Input{Body: map[string]any{tt.field.Name: tt.value}})

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantErr, ae.Details[0].Message)
		})
	}
}

/*
TestSchema_UUIDParam verifies identifier validation on path parameters.
*/
func TestSchema_UUIDParam(t *testing.T) {
	s := &schema.Schema{
		Params: []schema.Field{schema.IDField("userId").Require()},
	}

	_, err := s.Validate(schema.Input{
		Params: map[string]string{"userId": "0191b4c8-7d1e-7cc3-92f1-2f4c3a2b1d0e"},
	})
	assert.NoError(t, err)

	_, err = s.Validate(schema.Input{Params: map[string]string{"userId": "42"}})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Must be a valid UUID", ae.Details[0].Message)

	_, err = s.Validate(schema.Input{Params: map[string]string{}})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "This field is required", ae.Details[0].Message)
}

/*
TestSchema_TimeCoercion verifies RFC 3339 coercion of declared Time fields.
*/
func TestSchema_TimeCoercion(t *testing.T) {
	s := &schema.Schema{Body: []schema.Field{schema.PublishedAtField()}}

	values, err := s.Validate(schema.Input{
		Body: map[string]any{"publishedAt": "2026-08-01T12:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), values.Time("publishedAt"))

	_, err = s.Validate(schema.Input{Body: map[string]any{"publishedAt": "yesterday"}})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Must be a valid RFC 3339 timestamp", ae.Details[0].Message)
}

/*
TestSchema_IntCoercion verifies that JSON numbers coerce only when integral
and that query strings coerce via strconv.
*/
func TestSchema_IntCoercion(t *testing.T) {
	s := &schema.Schema{
		Body: []schema.Field{{Name: "limit", Type: schema.Int, Min: 1, Max: 100}},
	}

	values, err := s.Validate(schema.Input{Body: map[string]any{"limit": float64(42)}})
	require.NoError(t, err)
	assert.Equal(t, 42, values.Int("limit"))

	_, err = s.Validate(schema.Input{Body: map[string]any{"limit": 42.5}})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Must be an integer", ae.Details[0].Message)
}

/*
TestSchema_OptionalAbsent verifies optional-and-absent fields leave no entry,
and JSON null counts as absent.
*/
func TestSchema_OptionalAbsent(t *testing.T) {
	s := &schema.Schema{
		Body: []schema.Field{schema.SearchField(), schema.TitleField()},
	}

	values, err := s.Validate(schema.Input{
		Body: map[string]any{"title": nil},
	})
	require.NoError(t, err)
	assert.False(t, values.Has("search"))
	assert.False(t, values.Has("title"))
}
