// Copyright (c) 2026 Inkpress. All rights reserved.

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Callers must not leak which one occurred to the
// client; both collapse into a generic credentials failure at the boundary.
var (
	// ErrTokenExpired means the signature verified but the expiry has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenMalformed means the token could not be parsed or verified
	// against the signing secret.
	ErrTokenMalformed = errors.New("sec: token malformed")
)

// SessionClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, and DisplayName directly inside the JWT,
// the authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request. Validity is
// solely a function of signature and expiry — sessions are bearer
// credentials, not revocable records.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID      string `json:"uid"`
	Username    string `json:"unm"`
	DisplayName string `json:"dnm"`
}

// TokenService mints and verifies session tokens signed with HS256.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
}

// NewTokenService creates a new TokenService around a shared signing secret.
// timeToLive is the single canonical session TTL.
func NewTokenService(secret, issuer string, timeToLive time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
	}
}

// Issue creates a signed session token embedding the given identity claims
// with an expiry of now + TTL.
func (service *TokenService) Issue(userID, username, displayName string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and expiry of a session token string.
//
// It returns [ErrTokenExpired] when the signature is valid but the expiration
// has passed (against this process's clock, no grace window), and
// [ErrTokenMalformed] for every other failure.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
