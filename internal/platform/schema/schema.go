// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package schema provides declarative validation and coercion of request input.

Every route owns a static [Schema]: a table of [Field] constraints for its
path parameters, query string, and JSON body, built once at route-registration
time. Evaluation is non-short-circuiting — all violations across all three
sections are collected in declaration order and returned as a single
[apperr.AppError], so the client gets the complete error list in one round trip.

# Coercion

Values are coerced only where the field declares a non-string type (Int, Time).
Optional fields absent from the input are omitted from the validated output
unless the field declares a default. There is no partial success: either every
field validates or the request never reaches business logic.
*/
package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inkpress/inkpress/internal/platform/apperr"
)

// uuidRegex matches a UUIDv4 or UUIDv7 string (lowercased before matching).
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload.")

// # Field Declarations

// Type selects the coercion applied to a raw input value.
type Type int

const (
	// String passes the value through untouched.
	String Type = iota

	// Int coerces numeric strings (query/params) and JSON numbers to int.
	Int

	// Time coerces RFC 3339 strings to [time.Time].
	Time
)

// Field is a single declarative constraint set.
//
// Zero-valued knobs are inactive: Min/Max of 0 mean unbounded, a nil Pattern
// means no pattern check. Fields are immutable once declared; [Field.Require]
// returns a required copy rather than mutating.
type Field struct {
	Name     string
	Type     Type
	Required bool

	// Default is substituted when an optional field is absent. nil means the
	// field is simply omitted from the validated output.
	Default any

	// Min and Max bound an Int's value, or a String's rune count.
	Min, Max int

	// Pattern restricts a String; Hint is its violation message.
	Pattern *regexp.Regexp
	Hint    string

	// Email enables RFC 5322 address parsing.
	Email bool

	// UUID enables case-insensitive UUID format matching.
	UUID bool
}

// Require returns a copy of the field marked required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// WithDefault returns a copy of the field carrying a default value.
func (f Field) WithDefault(value any) Field {
	f.Default = value
	return f
}

// # Route Schemas

// Schema is the static validation table for one route.
type Schema struct {
	Params []Field
	Query  []Field
	Body   []Field
}

// Input carries the raw request sections to validate.
type Input struct {
	Params map[string]string
	Query  url.Values
	Body   map[string]any
}

// Values is the coerced output of a successful validation, keyed by field name.
// Absent optional fields without defaults have no entry.
type Values map[string]any

// Has reports whether the field was present in (or defaulted into) the input.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the field as a string, or "" if absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the field as an int, or 0 if absent.
func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

// Time returns the field as a [time.Time], or the zero time if absent.
func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

// Validate evaluates all three sections against the schema.
//
// It returns the coerced values, or an [apperr.AppError] with code
// VALIDATION_ERROR listing every violated field in declaration order
// (params, then query, then body).
func (s *Schema) Validate(input Input) (Values, error) {
	values := Values{}
	var violations []apperr.FieldError

	for _, field := range s.Params {
		raw, present := input.Params[field.Name]
		if raw == "" {
			present = false
		}
		violations = field.evaluate(raw, present, values, violations)
	}

	for _, field := range s.Query {
		var raw any
		present := input.Query != nil && input.Query.Has(field.Name)
		if present {
			raw = input.Query.Get(field.Name)
		}
		violations = field.evaluate(raw, present, values, violations)
	}

	for _, field := range s.Body {
		raw, present := input.Body[field.Name]
		if raw == nil {
			// JSON null is treated as absent, not as an empty value.
			present = false
		}
		violations = field.evaluate(raw, present, values, violations)
	}

	if len(violations) > 0 {
		return nil, apperr.ValidationError("Validation failed.", violations...)
	}

	return values, nil
}

// evaluate applies one field's constraint set to a raw value, appending any
// violations and storing the coerced value on success.
func (f Field) evaluate(raw any, present bool, values Values, violations []apperr.FieldError) []apperr.FieldError {
	if !present {
		if f.Required {
			return append(violations, apperr.FieldError{Field: f.Name, Message: "This field is required"})
		}
		if f.Default != nil {
			values[f.Name] = f.Default
		}
		return violations
	}

	switch f.Type {
	case Int:
		number, ok := coerceInt(raw)
		if !ok {
			return append(violations, apperr.FieldError{Field: f.Name, Message: "Must be an integer"})
		}
		if (f.Min != 0 || f.Max != 0) && (number < f.Min || number > f.Max) {
			return append(violations, apperr.FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("Must be between %d and %d", f.Min, f.Max),
			})
		}
		values[f.Name] = number

	case Time:
		text, ok := raw.(string)
		if !ok {
			return append(violations, apperr.FieldError{Field: f.Name, Message: "Must be a valid RFC 3339 timestamp"})
		}
		instant, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return append(violations, apperr.FieldError{Field: f.Name, Message: "Must be a valid RFC 3339 timestamp"})
		}
		values[f.Name] = instant

	default:
		text, ok := raw.(string)
		if !ok {
			return append(violations, apperr.FieldError{Field: f.Name, Message: "Must be a string"})
		}
		violations = f.checkString(text, violations)
		values[f.Name] = text
	}

	return violations
}

// checkString applies the string constraint knobs, collecting every failure
// rather than stopping at the first.
func (f Field) checkString(text string, violations []apperr.FieldError) []apperr.FieldError {
	length := utf8.RuneCountInString(text)

	if f.Min > 0 && length < f.Min {
		violations = append(violations, apperr.FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("Minimum %d characters", f.Min),
		})
	}

	if f.Max > 0 && length > f.Max {
		violations = append(violations, apperr.FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("Maximum %d characters", f.Max),
		})
	}

	if f.Pattern != nil && !f.Pattern.MatchString(text) {
		hint := f.Hint
		if hint == "" {
			hint = "Has an invalid format"
		}
		violations = append(violations, apperr.FieldError{Field: f.Name, Message: hint})
	}

	if f.Email {
		if _, err := mail.ParseAddress(text); err != nil {
			violations = append(violations, apperr.FieldError{Field: f.Name, Message: "Must be a valid email address"})
		}
	}

	if f.UUID && !uuidRegex.MatchString(strings.ToLower(text)) {
		violations = append(violations, apperr.FieldError{Field: f.Name, Message: "Must be a valid UUID"})
	}

	return violations
}

// coerceInt accepts numeric strings (query/path input) and JSON numbers.
// Fractional JSON numbers are rejected rather than truncated.
func coerceInt(raw any) (int, bool) {
	switch value := raw.(type) {
	case string:
		number, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return number, true
	case float64:
		number := int(value)
		if float64(number) != value {
			return 0, false
		}
		return number, true
	case int:
		return value, true
	default:
		return 0, false
	}
}
