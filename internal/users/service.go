// Copyright (c) 2026 Inkpress. All rights reserved.

package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/platform/sec"
	"github.com/inkpress/inkpress/pkg/uuid"
)

// Service implements the user account use cases.
//
// # Review Process
//
// Registration and password update touch credential material. Any change to
// the hash-then-store sequence must be reviewed by the security owners.
type Service struct {
	repo   Repository
	hasher *sec.PasswordHasher
	logger *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(repo Repository, hasher *sec.PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// Register hashes the password and persists a brand new user account.
//
// Uniqueness of email and username is enforced by the store's unique indexes;
// a violation surfaces as a CONFLICT error naming the offending column.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Derive credential material with a fresh salt. The raw password is
	// dropped here and never persisted.
	hash, salt, err := service.hasher.Derive(input.Password, "")
	if err != nil {
		return nil, err
	}

	// Time-sortable ID to prevent PG index fragmentation. Email is stored
	// lowercased so sign-in lookups stay case-insensitive.
	user := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(input.Email),
		Username:     input.Username,
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// List returns one page of users and the total account count.
func (service *Service) List(context context.Context, limit, offset int) ([]*User, int, error) {
	return service.repo.List(context, limit, offset)
}

// Get returns a single user by id.
func (service *Service) Get(context context.Context, id string) (*User, error) {
	return service.repo.FindByID(context, id)
}

// UpdateInput holds the optional fields of a profile update. nil means untouched.
type UpdateInput struct {
	Email       *string
	Password    *string
	Username    *string
	DisplayName *string
}

// Update applies a partial update to a user.
//
// When a new password is supplied it is re-derived with the account's stored
// salt before persisting, so hash and salt stay a matching pair.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*User, error) {
	patch := Patch{
		Email:       input.Email,
		Username:    input.Username,
		DisplayName: input.DisplayName,
	}
	if patch.Email != nil {
		lowered := strings.ToLower(*patch.Email)
		patch.Email = &lowered
	}

	if input.Password != nil {
		current, err := service.repo.FindByID(context, id)
		if err != nil {
			return nil, err
		}

		hash, salt, err := service.hasher.Derive(*input.Password, current.PasswordSalt)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
		patch.PasswordSalt = &salt
	}

	user, err := service.repo.Update(context, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", id))
	return user, nil
}

// Delete removes a user and returns the removed row.
// Owned posts are cascaded away by the store's foreign key.
func (service *Service) Delete(context context.Context, id string) (*User, error) {
	user, err := service.repo.Delete(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("user_deleted", slog.String("user_id", id))
	return user, nil
}
