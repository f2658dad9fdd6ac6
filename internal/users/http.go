// Copyright (c) 2026 Inkpress. All rights reserved.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkpress/inkpress/internal/platform/request"
	"github.com/inkpress/inkpress/internal/platform/respond"
	"github.com/inkpress/inkpress/internal/platform/schema"
)

// Handler implements the /users HTTP endpoints.
//
// Each route's validation schema is built once at construction and reused for
// every request.
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
				schema.EmailField().Require(),
				schema.PasswordField().Require(),
				schema.UsernameField().Require(),
				schema.DisplayNameField().Require(),
			},
		},
		listSchema: &schema.Schema{
			Query: []schema.Field{
				schema.LimitField(bounds),
				schema.OffsetField(),
			},
		},
		getSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldUserID).Require()},
		},
		updateSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldUserID).Require()},
			Body: []schema.Field{
				schema.EmailField(),
				schema.PasswordField(),
				schema.UsernameField(),
				schema.DisplayNameField(),
			},
		},
		deleteSchema: &schema.Schema{
			Params: []schema.Field{schema.IDField(FieldUserID).Require()},
		},
	}
}

// Routes returns a [chi.Router] with the users resource endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{userId}", handler.get)
	router.Patch("/{userId}", handler.update)
	router.Delete("/{userId}", handler.remove)

	return router
}

// create handles POST /users.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.createSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Email:       values.String(FieldEmail),
		Password:    values.String(FieldPassword),
		Username:    values.String(FieldUsername),
		DisplayName: values.String(FieldDisplayName),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user, 1)
}

// list handles GET /users.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.listSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, total, err := handler.service.List(request.Context(), values.Int("limit"), values.Int("offset"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, total)
}

// get handles GET /users/{userId}. The result is a single-element list.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.getSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), values.String(FieldUserID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*User{user}, 1)
}

// update handles PATCH /users/{userId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.updateSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{}
	if values.Has(FieldEmail) {
		email := values.String(FieldEmail)
		input.Email = &email
	}
	if values.Has(FieldPassword) {
		password := values.String(FieldPassword)
		input.Password = &password
	}
	if values.Has(FieldUsername) {
		username := values.String(FieldUsername)
		input.Username = &username
	}
	if values.Has(FieldDisplayName) {
		displayName := values.String(FieldDisplayName)
		input.DisplayName = &displayName
	}

	user, err := handler.service.Update(request.Context(), values.String(FieldUserID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, 1)
}

// remove handles DELETE /users/{userId}. The deleted row is echoed back.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.deleteSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Delete(request.Context(), values.String(FieldUserID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, 1)
}
