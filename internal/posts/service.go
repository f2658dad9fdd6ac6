// Copyright (c) 2026 Inkpress. All rights reserved.

package posts

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkpress/inkpress/internal/platform/apperr"
	"github.com/inkpress/inkpress/pkg/uuid"
)

// Service implements the post use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data for a new post. AuthorID comes from the session
// claims of the authenticated requester, never from the body.
type CreateInput struct {
	Title       string
	Content     string
	PublishedAt *time.Time
	AuthorID    string
}

// Create persists a new post owned by the authenticated author.
func (service *Service) Create(context context.Context, input CreateInput) (*Post, error) {
	post := &Post{
		ID:          uuid.New(),
		Title:       input.Title,
		Content:     input.Content,
		PublishedAt: input.PublishedAt,
		AuthorID:    input.AuthorID,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
	)
	return post, nil
}

// List returns one page of posts and the total count over the same predicate.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single post by id.
func (service *Service) Get(context context.Context, id string) (*Post, error) {
	return service.repo.FindByID(context, id)
}

// Update applies a partial update to a post after verifying the requester
// owns it.
func (service *Service) Update(context context.Context, id, requesterID string, patch Patch) (*Post, error) {
	if err := service.requireOwner(context, id, requesterID); err != nil {
		return nil, err
	}

	post, err := service.repo.Update(context, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", id))
	return post, nil
}

// Delete removes a post after verifying the requester owns it, and returns
// the removed row.
func (service *Service) Delete(context context.Context, id, requesterID string) (*Post, error) {
	if err := service.requireOwner(context, id, requesterID); err != nil {
		return nil, err
	}

	post, err := service.repo.Delete(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("post_deleted", slog.String("post_id", id))
	return post, nil
}

// requireOwner resolves the post and checks ownership against the session's
// user id. A missing post surfaces as NOT_FOUND before the ownership check.
func (service *Service) requireOwner(context context.Context, id, requesterID string) error {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return apperr.Forbidden("You do not own this post.")
	}
	return nil
}
