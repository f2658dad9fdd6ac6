// Copyright (c) 2026 Inkpress. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/ctxutil"
	"github.com/inkpress/inkpress/internal/platform/respond"
	"github.com/inkpress/inkpress/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the session token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the token via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// Malformed and expired tokens are reported with the same generic message so
// the response does not reveal which check failed.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid credentials."))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid credentials."))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required."))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
