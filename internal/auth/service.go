// Copyright (c) 2026 Inkpress. All rights reserved.

// Package auth implements the sessions resource: exchanging credentials for a
// signed bearer token.
//
// # Architecture
//
//   - service.go: sign-in use case (credential check + token mint)
//   - http.go: the POST /sign-in endpoint
//   - store_redis.go: Redis-backed failed-attempt throttle
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/users"
)

// UserFinder resolves an account by email or username. Satisfied by
// users.Repository.
type UserFinder interface {
	FindByLogin(context context.Context, login string) (*users.User, error)
}

// CredentialVerifier checks a password against a stored hash and salt.
// Satisfied by sec.PasswordHasher.
type CredentialVerifier interface {
	Verify(password, knownHash, knownSalt string) bool
}

// TokenIssuer mints a signed session token for an authenticated account.
// Satisfied by sec.TokenService.
type TokenIssuer interface {
	Issue(userID, username, displayName string) (string, error)
}

// AttemptLimiter tracks failed sign-in attempts per login so that credential
// stuffing against one account is slowed down. Satisfied by
// RedisAttemptStore.
type AttemptLimiter interface {
	TooManyFailures(context context.Context, login string) (bool, error)
	RecordFailure(context context.Context, login string) error
	Reset(context context.Context, login string) error
}

// Service implements the sign-in use case.
type Service struct {
	finder   UserFinder
	verifier CredentialVerifier
	issuer   TokenIssuer
	limiter  AttemptLimiter
	logger   *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(finder UserFinder, verifier CredentialVerifier, issuer TokenIssuer, limiter AttemptLimiter, logger *slog.Logger) *Service {
	return &Service{
		finder:   finder,
		verifier: verifier,
		issuer:   issuer,
		limiter:  limiter,
		logger:   logger,
	}
}

// Session is the result of a successful sign-in.
type Session struct {
	JWT string `json:"jwt"`
}

// SignIn exchanges an email-or-username plus password for a signed session
// token.
//
// An unknown login and a wrong password both surface as the same generic
// Unauthorized error, so the endpoint cannot be used to probe which accounts
// exist. Each failure increments a per-login counter in Redis; once the
// counter passes its threshold the login is rejected with 429 until the
// window expires, without even consulting the database.
func (service *Service) SignIn(context context.Context, login, password string) (*Session, error) {
	login = strings.ToLower(strings.TrimSpace(login))

	locked, err := service.limiter.TooManyFailures(context, login)
	if err != nil {
		// Redis being down must not take sign-in down with it.
		service.logger.ErrorContext(context, "signin_limiter_unavailable",
			slog.String("error", err.Error()),
		)
	} else if locked {
		return nil, apperr.RateLimited("Too many failed sign-in attempts. Try again later.")
	}

	user, err := service.finder.FindByLogin(context, login)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, service.reject(context, login)
		}
		return nil, err
	}

	if !service.verifier.Verify(password, user.PasswordHash, user.PasswordSalt) {
		return nil, service.reject(context, login)
	}

	token, err := service.issuer.Issue(user.ID, user.Username, user.DisplayName)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.limiter.Reset(context, login); err != nil {
		service.logger.WarnContext(context, "signin_limiter_reset_failed",
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("user_signed_in", slog.String("user_id", user.ID))
	return &Session{JWT: token}, nil
}

// reject records the failed attempt and returns the generic credential error.
func (service *Service) reject(context context.Context, login string) error {
	if err := service.limiter.RecordFailure(context, login); err != nil {
		service.logger.WarnContext(context, "signin_limiter_record_failed",
			slog.String("error", err.Error()),
		)
	}
	return apperr.Unauthorized("Invalid credentials.")
}
