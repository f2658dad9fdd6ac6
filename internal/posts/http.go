// Copyright (c) 2026 Inkpress. All rights reserved.

package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpress/inkpress/internal/platform/middleware"
	requestutil "github.com/inkpress/inkpress/internal/platform/request"
	"github.com/inkpress/inkpress/internal/platform/respond"
	"github.com/inkpress/inkpress/internal/platform/schema"
)

// Handler implements the /posts HTTP endpoints.
type Handler struct {
	service *Service

	createSchema *schema.Schema
	listSchema   *schema.Schema
	getSchema    *schema.Schema
	updateSchema *schema.Schema
	deleteSchema *schema.Schema
}

// NewHandler constructs a [Handler] with its route schemas resolved against
// the deployment's pagination bounds.
func NewHandler(service *Service, bounds schema.Bounds) *Handler {
	return &Handler{
		service: service,

		createSchema: &schema.Schema{
			Body: []schema.Field{
				schema.TitleField().Require(),
				schema.ContentField().Require(),
				schema.PublishedAtField(),
			},
		},
		listSchema: &schema.Schema{
			Query: []schema.Field{
				schema.LimitField(bounds),
				schema.OffsetField(),
				schema.IDField(FieldUserID),
				schema.SearchField(),
			},
		},
		getSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldPostID).Require()},
		},
		updateSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldPostID).Require()},
			Body: []schema.Field{
				schema.TitleField(),
				schema.ContentField(),
				schema.PublishedAtField(),
			},
		},
		deleteSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldPostID).Require()},
		},
	}
}

// Routes returns a [chi.Router] with the posts resource endpoints.
// Reads are public; creation and mutation require an authenticated session,
// and mutation additionally requires ownership (enforced in the service).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/{postId}", handler.get)

	// Session required
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.create)
		authed.Patch("/{postId}", handler.update)
		authed.Delete("/{postId}", handler.remove)
	})

	return router
}

// create handles POST /posts.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := requestutil.Validate(request, handler.createSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CreateInput{
		Title:    values.String(FieldTitle),
		Content:  values.String(FieldContent),
		AuthorID: claims.UserID,
	}
	if values.Has(FieldPublishedAt) {
		publishedAt := values.Time(FieldPublishedAt)
		input.PublishedAt = &publishedAt
	}

	post, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post, 1)
}

// list handles GET /posts.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.listSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		AuthorID: values.String(FieldUserID),
		Search:   values.String(FieldSearch),
	}

	result, total, err := handler.service.List(request.Context(), filter, values.Int("limit"), values.Int("offset"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, total)
}

// get handles GET /posts/{postId}. The result is a single-element list.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.getSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Get(request.Context(), values.String(FieldPostID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*Post{post}, 1)
}

// update handles PATCH /posts/{postId} (owner only).
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := requestutil.Validate(request, handler.updateSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := Patch{}
	if values.Has(FieldTitle) {
		title := values.String(FieldTitle)
		patch.Title = &title
	}
	if values.Has(FieldContent) {
		content := values.String(FieldContent)
		patch.Content = &content
	}
	if values.Has(FieldPublishedAt) {
		publishedAt := values.Time(FieldPublishedAt)
		patch.PublishedAt = &publishedAt
	}

	post, err := handler.service.Update(request.Context(), values.String(FieldPostID), claims.UserID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post, 1)
}

// remove handles DELETE /posts/{postId} (owner only). The deleted row is
// echoed back.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := requestutil.Validate(request, handler.deleteSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Delete(request.Context(), values.String(FieldPostID), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post, 1)
}
