// Copyright (c) 2026 Inkpress. All rights reserved.

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// saltLength is the size in bytes of a freshly generated salt.
const saltLength = 16

// PasswordHasher derives verifiable password hashes using PBKDF2-SHA512.
//
// # Parameters
//
// The pepper is a process-wide secret prepended to every password before
// derivation; it lives only in configuration, never next to user records.
// Iterations and key length are fixed at construction so that every hash in
// the database was produced with the same cost parameters.
//
// # Concurrency
//
// PasswordHasher is immutable after construction and safe for concurrent use.
type PasswordHasher struct {
	pepper     string
	iterations int
	keyLength  int
}

// NewPasswordHasher constructs a [PasswordHasher] with fixed derivation parameters.
func NewPasswordHasher(pepper string, iterations, keyLength int) *PasswordHasher {
	return &PasswordHasher{
		pepper:     pepper,
		iterations: iterations,
		keyLength:  keyLength,
	}
}

// Derive computes the hex-encoded hash of password under salt.
//
// When salt is empty a fresh cryptographically random salt is generated and
// returned alongside the hash. Malformed input is the schema validator's
// responsibility; Derive never panics on it.
func (hasher *PasswordHasher) Derive(password, salt string) (hash, usedSalt string, err error) {
	if salt == "" {
		salt, err = randomSalt()
		if err != nil {
			return "", "", err
		}
	}

	derived := pbkdf2.Key(
		[]byte(hasher.pepper+password),
		[]byte(salt),
		hasher.iterations,
		hasher.keyLength,
		sha512.New,
	)

	return hex.EncodeToString(derived), salt, nil
}

// Verify re-derives password with knownSalt and compares the result against
// knownHash in constant time.
func (hasher *PasswordHasher) Verify(password, knownHash, knownSalt string) bool {
	derived, _, err := hasher.Derive(password, knownSalt)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(derived), []byte(knownHash))
}

// randomSalt draws a fixed-length salt from the system entropy source.
func randomSalt() (string, error) {
	buffer := make([]byte, saltLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: entropy source unavailable: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
