// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and glues the
transport layer to the declarative [schema] validator, ensuring consistent
error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/ctxutil"
	"github.com/inkpress/inkpress/internal/platform/schema"
	"github.com/inkpress/inkpress/internal/platform/sec"
)

/*
Validate gathers the raw request sections and evaluates them against the
route's schema in one shot.

Path parameters are resolved by the names declared in s.Params; the query
string is taken as-is; the JSON body is decoded only when the schema declares
body fields. An empty body decodes to no fields, so required body fields each
report their own violation instead of a blanket JSON error.

Returns:
  - schema.Values: Coerced input, ready for the service layer
  - error: schema.ErrInvalidJSON or the aggregated validation error
*/
func Validate(request *http.Request, s *schema.Schema) (schema.Values, error) {
	input := schema.Input{Query: request.URL.Query()}

	if len(s.Params) > 0 {
		input.Params = make(map[string]string, len(s.Params))
		for _, field := range s.Params {
			input.Params[field.Name] = chi.URLParam(request, field.Name)
		}
	}

	if len(s.Body) > 0 {
		body, err := DecodeBody(request)
		if err != nil {
			return nil, err
		}
		input.Body = body
	}

	return s.Validate(input)
}

/*
DecodeBody reads the request body into a generic JSON object.

A missing or empty body yields an empty map. Anything that is not a JSON
object yields [schema.ErrInvalidJSON].
*/
func DecodeBody(request *http.Request) (map[string]any, error) {
	body := map[string]any{}
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return body, nil
		}
		return nil, schema.ErrInvalidJSON
	}
	return body, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated session claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.

Returns:
  - *sec.SessionClaims: The authenticated session claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.SessionClaims, error) {

	// Get session claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required.")
	}

	return claims, nil
}
