// Copyright (c) 2026 Inkpress. All rights reserved.

package users_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/internal/platform/sec"
	"github.com/inkpress/inkpress/internal/users"
	"github.com/inkpress/inkpress/pkg/pointer"
)

// fakeRepository is an in-memory users.Repository keyed by id.
type fakeRepository struct {
	rows map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[string]*users.User{}}
}

func (repository *fakeRepository) Create(_ context.Context, user *users.User) error {
	for _, existing := range repository.rows {
		if existing.Email == user.Email {
			return apperr.Conflict("Duplicate value for email.")
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Duplicate value for username.")
		}
	}
	clone := *user
	repository.rows[user.ID] = &clone
	return nil
}

func (repository *fakeRepository) List(_ context.Context, limit, offset int) ([]*users.User, int, error) {
	result := []*users.User{}
	for _, user := range repository.rows {
		result = append(result, user)
	}
	return result, len(repository.rows), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*users.User, error) {
	user, ok := repository.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeRepository) FindByLogin(_ context.Context, login string) (*users.User, error) {
	for _, user := range repository.rows {
		if user.Email == login || user.Username == login {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeRepository) Update(_ context.Context, id string, patch users.Patch) (*users.User, error) {
	user, ok := repository.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.PasswordSalt != nil {
		user.PasswordSalt = *patch.PasswordSalt
	}
	return user, nil
}

func (repository *fakeRepository) Delete(_ context.Context, id string) (*users.User, error) {
	user, ok := repository.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	delete(repository.rows, id)
	return user, nil
}

func newTestService() (*users.Service, *fakeRepository, *sec.PasswordHasher) {
	repository := newFakeRepository()
	hasher := sec.NewPasswordHasher("test-pepper", 1000, 64)
	service := users.NewService(repository, hasher, slog.Default())
	return service, repository, hasher
}

/*
TestService_Register verifies that registration derives credential material
before storage: the raw password never lands in the repository, and the
stored hash/salt pair verifies.
*/
func TestService_Register(t *testing.T) {
	service, repository, hasher := newTestService()

	user, err := service.Register(context.Background(), users.RegisterInput{
		Email:       "Reader@Example.com",
		Password:    "password123",
		Username:    "reader",
		DisplayName: "Reader One",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	stored := repository.rows[user.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "reader@example.com", stored.Email)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordSalt)
	assert.True(t, hasher.Verify("password123", stored.PasswordHash, stored.PasswordSalt))
}

/*
TestService_Register_Duplicate verifies unique-constraint conflicts surface
unchanged from the repository.
*/
func TestService_Register_Duplicate(t *testing.T) {
	service, _, _ := newTestService()

	input := users.RegisterInput{
		Email:       "reader@example.com",
		Password:    "password123",
		Username:    "reader",
		DisplayName: "Reader One",
	}

	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Update_Password verifies a password change re-derives with the
account's stored salt, keeping hash and salt a matching pair.
*/
func TestService_Update_Password(t *testing.T) {
	service, repository, hasher := newTestService()

	user, err := service.Register(context.Background(), users.RegisterInput{
		Email:       "reader@example.com",
		Password:    "old-password-1",
		Username:    "reader",
		DisplayName: "Reader One",
	})
	require.NoError(t, err)
	originalSalt := repository.rows[user.ID].PasswordSalt

	_, err = service.Update(context.Background(), user.ID, users.UpdateInput{
		Password: pointer.To("new-password-1"),
	})
	require.NoError(t, err)

	stored := repository.rows[user.ID]
	assert.Equal(t, originalSalt, stored.PasswordSalt)
	assert.True(t, hasher.Verify("new-password-1", stored.PasswordHash, stored.PasswordSalt))
	assert.False(t, hasher.Verify("old-password-1", stored.PasswordHash, stored.PasswordSalt))
}

/*
TestService_Update_Profile verifies partial updates touch only the supplied
fields and lowercase a new email.
*/
func TestService_Update_Profile(t *testing.T) {
	service, repository, _ := newTestService()

	user, err := service.Register(context.Background(), users.RegisterInput{
		Email:       "reader@example.com",
		Password:    "password123",
		Username:    "reader",
		DisplayName: "Reader One",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), user.ID, users.UpdateInput{
		Email:       pointer.To("NewReader@Example.com"),
		DisplayName: pointer.To("Reader Two"),
	})
	require.NoError(t, err)

	assert.Equal(t, "newreader@example.com", updated.Email)
	assert.Equal(t, "Reader Two", updated.DisplayName)
	assert.Equal(t, "reader", updated.Username)
	assert.Equal(t, repository.rows[user.ID].PasswordHash, updated.PasswordHash)
}

/*
TestService_Delete verifies deletion returns the removed row and a second
delete reports NOT_FOUND.
*/
func TestService_Delete(t *testing.T) {
	service, _, _ := newTestService()

	user, err := service.Register(context.Background(), users.RegisterInput{
		Email:       "reader@example.com",
		Password:    "password123",
		Username:    "reader",
		DisplayName: "Reader One",
	})
	require.NoError(t, err)

	removed, err := service.Delete(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, removed.ID)

	_, err = service.Delete(context.Background(), user.ID)
	assert.True(t, apperr.IsNotFound(err))
}
