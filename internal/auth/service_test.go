// Copyright (c) 2026 Inkpress. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/sec"
	"github.com/inkpress/inkpress/internal/users"
)

// fakeFinder resolves one known account by email or username.
type fakeFinder struct {
	user *users.User
}

func (finder *fakeFinder) FindByLogin(_ context.Context, login string) (*users.User, error) {
	if finder.user != nil && (finder.user.Email == login || finder.user.Username == login) {
		return finder.user, nil
	}
	return nil, apperr.NotFound("User")
}

// fakeLimiter is an in-memory AttemptLimiter counting failures per login.
type fakeLimiter struct {
	failures map[string]int
	locked   bool
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{failures: map[string]int{}}
}

func (limiter *fakeLimiter) TooManyFailures(_ context.Context, login string) (bool, error) {
	return limiter.locked, nil
}

func (limiter *fakeLimiter) RecordFailure(_ context.Context, login string) error {
	limiter.failures[login]++
	return nil
}

func (limiter *fakeLimiter) Reset(_ context.Context, login string) error {
	delete(limiter.failures, login)
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeLimiter, *sec.TokenService) {
	t.Helper()

	hasher := sec.NewPasswordHasher("test-pepper", 1000, 64)
	hash, salt, err := hasher.Derive("password123", "")
	require.NoError(t, err)

	finder := &fakeFinder{user: &users.User{
		ID:           "user-1",
		Email:        "reader@example.com",
		Username:     "reader",
		DisplayName:  "Reader One",
		PasswordHash: hash,
		PasswordSalt: salt,
	}}

	tokenSvc := sec.NewTokenService("test-secret", "inkpress.app", time.Hour)
	limiter := newFakeLimiter()
	service := auth.NewService(finder, hasher, tokenSvc, limiter, slog.Default())
	return service, limiter, tokenSvc
}

/*
TestSignIn_Success verifies a correct email/password yields a verifiable
session token and clears the failure counter.
*/
func TestSignIn_Success(t *testing.T) {
	service, limiter, tokenSvc := newTestService(t)
	limiter.failures["reader@example.com"] = 3

	session, err := service.SignIn(context.Background(), "reader@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, session.JWT)

	claims, err := tokenSvc.VerifyToken(session.JWT)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "Reader One", claims.DisplayName)

	assert.Zero(t, limiter.failures["reader@example.com"])
}

/*
TestSignIn_ByUsername verifies the login field accepts a username too.
*/
func TestSignIn_ByUsername(t *testing.T) {
	service, _, _ := newTestService(t)

	session, err := service.SignIn(context.Background(), "reader", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.JWT)
}

/*
TestSignIn_NormalizesLogin verifies the login is trimmed and lowercased
before lookup, so mixed-case input still matches the stored account.
*/
func TestSignIn_NormalizesLogin(t *testing.T) {
	service, _, _ := newTestService(t)

	session, err := service.SignIn(context.Background(), "  Reader@Example.COM ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.JWT)
}

/*
TestSignIn_GenericRejection verifies an unknown account and a wrong password
produce the identical 401, so the endpoint leaks nothing about which accounts
exist — and both record a failed attempt.
*/
func TestSignIn_GenericRejection(t *testing.T) {
	service, limiter, _ := newTestService(t)

	_, unknownErr := service.SignIn(context.Background(), "nobody@example.com", "password123")
	_, wrongPassErr := service.SignIn(context.Background(), "reader@example.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongPassErr} {
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
		assert.Equal(t, []string{"Invalid credentials."}, ae.Messages())
	}

	assert.Equal(t, 1, limiter.failures["nobody@example.com"])
	assert.Equal(t, 1, limiter.failures["reader@example.com"])
}

/*
TestSignIn_Throttled verifies a locked-out login is rejected with 429 before
any credential check runs.
*/
func TestSignIn_Throttled(t *testing.T) {
	service, limiter, _ := newTestService(t)
	limiter.locked = true

	_, err := service.SignIn(context.Background(), "reader@example.com", "password123")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
}
